package metapress

// Navigation über das feste Schema der Exporte:
// Journal > JournalInfo/JournalCode
// Journal > Volume > VolumeInfo/VolumeNumber
// Journal > Volume > Issue > IssueInfo/IssueNumberBegin
// Journal > Volume > Issue > Article

// JournalCode liefert das Pfad-Kürzel der Zeitschrift aus dem Dokument.
func JournalCode(doc *Node) string {
	journal := journalNode(doc)
	return journal.Child("JournalInfo").Child("JournalCode").Value()
}

// IssueNode liefert das Ausgaben-Element des Dokuments oder nil.
func IssueNode(doc *Node) *Node {
	return journalNode(doc).Child("Volume").Child("Issue")
}

// VolumeNumber liefert die Bandnummer als Rohtext ("" wenn nicht vorhanden).
func VolumeNumber(doc *Node) string {
	volume := journalNode(doc).Child("Volume")
	return volume.Child("VolumeInfo").Child("VolumeNumber").Value()
}

// IssueNumber liefert die Heftnummer (IssueNumberBegin) als Rohtext.
func IssueNumber(doc *Node) string {
	return IssueNode(doc).Child("IssueInfo").Child("IssueNumberBegin").Value()
}

// ArticleNode liefert das Artikel-Element der Ausgabe oder nil.
func ArticleNode(doc *Node) *Node {
	return IssueNode(doc).Child("Article")
}

func journalNode(doc *Node) *Node {
	if doc == nil {
		return nil
	}
	if doc.Name == "Journal" {
		return doc
	}
	return doc.Child("Journal")
}
