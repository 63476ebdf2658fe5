package models

import "time"

// Zugriffsstatus einer Ausgabe.
const (
	IssueAccessOpen         = "open"
	IssueAccessSubscription = "subscription"
)

// Issue repräsentiert eine Ausgabe einer Zeitschrift.
// Eine Ausgabe ist pro Zeitschrift über (Volume, Number) eindeutig;
// ein erneuter Import derselben Ausgabe liefert den bestehenden Datensatz.
type Issue struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JournalID uint `json:"journal_id" gorm:"index;not null"`

	Volume *int `json:"volume,omitempty"`
	Number *int `json:"number,omitempty"`
	Year   int  `json:"year,omitempty"`

	DatePublished *time.Time `json:"date_published,omitempty"`

	Title     LocalizedText `json:"title,omitempty" gorm:"type:jsonb"`
	ShowTitle bool          `json:"show_title"`

	AccessStatus string `json:"access_status" gorm:"default:'open'"`
	Published    bool   `json:"published"`
	Current      bool   `json:"current"`
}

// TableName gibt explizit den Tabellennamen an.
func (Issue) TableName() string {
	return "issues"
}
