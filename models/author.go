package models

// Platzhalter-Adresse; Metapress-Exporte enthalten keine E-Mail-Adressen.
const AuthorPlaceholderEmail = "none"

// Author repräsentiert eine Autorin oder einen Autor eines importierten Artikels.
type Author struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ArticleID uint `json:"article_id" gorm:"index;not null"`

	GivenName  string `json:"given_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`

	// Freitext-Zugehörigkeit, über die AFFID des Dokuments aufgelöst.
	Affiliation string `json:"affiliation,omitempty"`

	Email string `json:"email" gorm:"default:'none'"`

	// 1-basiert in Dokumentreihenfolge; Nummer 1 ist Hauptkontakt.
	Seq            int  `json:"seq" gorm:"not null"`
	PrimaryContact bool `json:"primary_contact"`
}

// TableName gibt explizit den Tabellennamen an.
func (Author) TableName() string {
	return "authors"
}
