package models

import "time"

// User ist das Konto, dem importierte Einreichungen zugeordnet werden.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (User) TableName() string {
	return "users"
}

// ImportEvent ist ein strukturierter Protokolleintrag eines abgeschlossenen Imports.
type ImportEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	JournalID uint   `json:"journal_id" gorm:"index"`
	ArticleID uint   `json:"article_id" gorm:"index"`
	UserID    uint   `json:"user_id"`
	Message   string `json:"message"`
}

// TableName gibt explizit den Tabellennamen an.
func (ImportEvent) TableName() string {
	return "import_events"
}
