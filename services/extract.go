package services

import (
	"metapress-import/metapress"
	"metapress-import/models"
)

// extractAuthors liest alle Autoren der Gruppe in Dokumentreihenfolge und
// löst ihre AffiliationId gegen die Affiliation-Elemente derselben Gruppe
// auf. Eine nicht auflösbare Kennung lässt die Zugehörigkeit einfach leer.
func extractAuthors(group *metapress.Node, articleID uint) []models.Author {
	affiliations := extractAffiliations(group)

	var authors []models.Author
	for i, node := range group.Children("Author") {
		author := models.Author{
			ArticleID:      articleID,
			GivenName:      node.Child("GivenName").Value(),
			MiddleName:     node.Child("Initials").Value(),
			FamilyName:     node.Child("FamilyName").Value(),
			Email:          models.AuthorPlaceholderEmail,
			Seq:            i + 1,
			PrimaryContact: i == 0,
		}
		if id := node.Attr("AffiliationId"); id != "" {
			author.Affiliation = affiliations[id]
		}
		authors = append(authors, author)
	}
	return authors
}

// extractAffiliations liest die Zuordnung AFFID -> Organisationsname.
func extractAffiliations(group *metapress.Node) map[string]string {
	affiliations := make(map[string]string)
	for _, node := range group.Children("Affiliation") {
		id := node.Attr("AFFID")
		if id == "" {
			continue
		}
		if org := node.Child("OrgName"); org != nil {
			affiliations[id] = org.Value()
		}
	}
	return affiliations
}
