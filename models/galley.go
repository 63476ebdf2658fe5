package models

import "time"

// Galley ist eine veröffentlichte Darreichungsform eines Artikels (PDF, HTML, ...).
type Galley struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ArticleID uint `json:"article_id" gorm:"index;not null"`
	FileID    uint `json:"file_id" gorm:"not null"`

	Label  string `json:"label" gorm:"not null"`
	Locale string `json:"locale"`

	// Reihenfolge unter den Darreichungsformen desselben Artikels.
	Seq int `json:"seq" gorm:"default:1"`

	// Anzeigename; überschreibt den aus dem Quellpfad abgeleiteten Namen.
	FileName string `json:"file_name,omitempty"`

	Images []GalleyImage `json:"images,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Galley) TableName() string {
	return "galleys"
}

// GalleyImage ist ein eingebettetes Medium einer HTML-Darreichungsform.
type GalleyImage struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	GalleyID uint   `json:"galley_id" gorm:"index;not null"`
	FileID   uint   `json:"file_id" gorm:"not null"`
	MimeType string `json:"mime_type"`
}

// TableName gibt explizit den Tabellennamen an.
func (GalleyImage) TableName() string {
	return "galley_images"
}

// ArticleFile ist die Metadaten-Zeile einer im Objektspeicher abgelegten Datei.
type ArticleFile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ArticleID uint `json:"article_id" gorm:"index;not null"`

	OriginalFileName string `json:"original_file_name"`
	MimeType         string `json:"mime_type"`
	Size             int64  `json:"size"`

	S3Key  string `json:"s3_key"`
	S3Link string `json:"s3_link"`
}

// TableName gibt explizit den Tabellennamen an.
func (ArticleFile) TableName() string {
	return "article_files"
}
