package metapress

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Parse liest ein Metapress-Export-Dokument und gibt dessen Wurzelelement zurück.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fehler beim Parsen des Dokuments: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				node.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					node.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("unerwartetes zweites Wurzelelement <%s>", t.Name.Local)
				}
				root = node
			} else {
				stack[len(stack)-1].append(node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("dokument enthält kein Wurzelelement")
	}
	return root, nil
}

// ParseFile liest ein Export-Dokument von der Festplatte.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Öffnen von %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
