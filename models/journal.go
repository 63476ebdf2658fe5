package models

import "time"

// Journal repräsentiert eine Zeitschrift, in die importiert wird.
type Journal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Pfad-Kürzel, über das Exporte die Zeitschrift referenzieren (JournalCode).
	Path string `json:"path" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`

	PrimaryLocale    string     `json:"primary_locale" gorm:"not null;default:'en_US'"`
	SupportedLocales StringList `json:"supported_locales" gorm:"type:jsonb"`

	// Standardwerte für die Rechte-Initialisierung importierter Artikel.
	CopyrightHolder string `json:"copyright_holder,omitempty"`
	LicenseURL      string `json:"license_url,omitempty"`

	Sections []Section `json:"sections,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Journal) TableName() string {
	return "journals"
}

// Section ist eine Rubrik einer Zeitschrift; importierte Artikel landen in der ersten.
type Section struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	JournalID uint   `json:"journal_id" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	Seq       int    `json:"seq" gorm:"default:0"`
}

// TableName gibt explizit den Tabellennamen an.
func (Section) TableName() string {
	return "sections"
}
