package models

import "time"

// Artikel-Status; Importe sind immer sofort veröffentlicht.
const (
	ArticleStatusPublished = "published"
)

// Zugriffsstatus eines veröffentlichten Artikels.
const (
	ArticleAccessIssueDefault = "issue_default"
)

// Sequenzwert, der einen neu verknüpften Artikel ans Ende der Sortierung stellt,
// bis die Rubrik neu durchnummeriert wird.
const ArticleSeqEnd = 100000

// Article repräsentiert eine importierte Einreichung mit ihren lokalisierten Metadaten.
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JournalID uint  `json:"journal_id" gorm:"index;not null"`
	SectionID *uint `json:"section_id,omitempty"`
	UserID    uint  `json:"user_id"`

	// Primäre Locale des Artikels; Titel muss für sie belegt sein.
	Locale string `json:"locale" gorm:"not null"`
	Status string `json:"status" gorm:"default:'published'"`

	DateSubmitted      *time.Time `json:"date_submitted,omitempty"`
	DateStatusModified *time.Time `json:"date_status_modified,omitempty"`

	Title    LocalizedText `json:"title" gorm:"type:jsonb"`
	Abstract LocalizedText `json:"abstract,omitempty" gorm:"type:jsonb"`
	// Semikolon-verkettete Schlagwörter je Locale.
	Subject LocalizedText `json:"subject,omitempty" gorm:"type:jsonb"`

	Pages string `json:"pages,omitempty"`

	// Externer Identifier (DOI); eindeutig innerhalb der Zeitschrift.
	PubID string `json:"pub_id,omitempty" gorm:"index:idx_articles_journal_pubid,unique,where:pub_id <> ''"`

	// Verketteter Block der Literaturangaben.
	Citations string `json:"citations,omitempty" gorm:"type:text"`

	CopyrightHolder string `json:"copyright_holder,omitempty"`
	CopyrightYear   int    `json:"copyright_year,omitempty"`
	LicenseURL      string `json:"license_url,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Article) TableName() string {
	return "articles"
}

// LocalizedTitle liefert den Titel in der primären Locale des Artikels.
func (a *Article) LocalizedTitle() string {
	return a.Title.Get(a.Locale)
}

// PublishedArticle verknüpft einen Artikel mit seiner Ausgabe.
type PublishedArticle struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ArticleID uint `json:"article_id" gorm:"uniqueIndex;not null"`
	IssueID   uint `json:"issue_id" gorm:"index;not null"`

	// Online-Datum aus dem Export; fällt es, gilt das Datum der Ausgabe.
	DatePublished *time.Time `json:"date_published,omitempty"`

	AccessStatus string  `json:"access_status" gorm:"default:'issue_default'"`
	Seq          float64 `json:"seq"`
}

// TableName gibt explizit den Tabellennamen an.
func (PublishedArticle) TableName() string {
	return "published_articles"
}
