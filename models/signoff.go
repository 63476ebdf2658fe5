package models

// Workflow-Stationen, für die beim Import leere Freigaben angelegt werden.
const (
	SignoffCopyeditingInitial      = "copyediting_initial"
	SignoffCopyeditingAuthor       = "copyediting_author"
	SignoffCopyeditingFinal        = "copyediting_final"
	SignoffLayout                  = "layout"
	SignoffProofreadingAuthor      = "proofreading_author"
	SignoffProofreadingProofreader = "proofreading_proofreader"
	SignoffProofreadingLayout      = "proofreading_layout"
)

// ImportSignoffKinds sind die Stationen in der Reihenfolge, in der sie angelegt werden.
var ImportSignoffKinds = []string{
	SignoffCopyeditingInitial,
	SignoffCopyeditingAuthor,
	SignoffCopyeditingFinal,
	SignoffLayout,
	SignoffProofreadingAuthor,
	SignoffProofreadingProofreader,
	SignoffProofreadingLayout,
}

// Signoff ist ein leerer Freigabe-Platzhalter einer Workflow-Station.
type Signoff struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ArticleID uint   `json:"article_id" gorm:"index;not null"`
	Kind      string `json:"kind" gorm:"not null"`
	UserID    uint   `json:"user_id" gorm:"default:0"`
}

// TableName gibt explizit den Tabellennamen an.
func (Signoff) TableName() string {
	return "signoffs"
}
