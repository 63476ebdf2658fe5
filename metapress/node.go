// Package metapress liest das XML-Exportformat von Metapress-Ausgaben:
// ein Dokument je Artikel mit Journal-, Ausgaben-, Artikel-, Autoren- und
// Volltext-Angaben.
package metapress

import "strings"

// Node ist ein Element des geparsten Dokumentbaums. Kinder werden beim
// Parsen einmalig je Tag-Namen indiziert; die Dokumentreihenfolge innerhalb
// eines Tags bleibt erhalten.
type Node struct {
	Name  string
	Attrs map[string]string

	text     strings.Builder
	children []*Node
	byName   map[string][]*Node
}

func (n *Node) append(child *Node) {
	if n.byName == nil {
		n.byName = make(map[string][]*Node)
	}
	n.children = append(n.children, child)
	n.byName[child.Name] = append(n.byName[child.Name], child)
}

// Child liefert das erste Kind mit dem gegebenen Tag-Namen oder nil.
func (n *Node) Child(name string) *Node {
	return n.ChildN(name, 0)
}

// ChildN liefert das i-te Kind (0-basiert) mit dem gegebenen Tag-Namen oder nil.
func (n *Node) ChildN(name string, i int) *Node {
	if n == nil || i < 0 {
		return nil
	}
	nodes := n.byName[name]
	if i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// Children liefert alle Kinder mit dem gegebenen Tag-Namen in Dokumentreihenfolge.
func (n *Node) Children(name string) []*Node {
	if n == nil {
		return nil
	}
	return n.byName[name]
}

// Attr liefert den Wert eines Attributs oder "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// Value liefert den Textinhalt des Elements ohne führende und folgende Leerzeichen.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.text.String())
}
