// Package repository definiert je Entität eine schmale Persistenz-Schnittstelle.
// Der Import-Orchestrierer kennt nur diese Interfaces; die GORM-Implementierung
// liegt in gorm.go, Tests arbeiten mit In-Memory-Fakes.
package repository

import (
	"context"

	"metapress-import/models"
)

// Lookups liefern (nil, nil), wenn kein Datensatz existiert.

// JournalRepository löst Zeitschriften über ihr Pfad-Kürzel auf.
type JournalRepository interface {
	FindByPath(ctx context.Context, path string) (*models.Journal, error)
	Create(ctx context.Context, journal *models.Journal) error
	List(ctx context.Context) ([]models.Journal, error)
}

// SectionRepository listet die Rubriken einer Zeitschrift in Sortierreihenfolge.
type SectionRepository interface {
	ListByJournal(ctx context.Context, journalID uint) ([]models.Section, error)
	Create(ctx context.Context, section *models.Section) error
}

// IssueRepository verwaltet Ausgaben.
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	Update(ctx context.Context, issue *models.Issue) error
	Delete(ctx context.Context, id uint) error
	// FindPublishedByNumber sucht eine veröffentlichte Ausgabe über (Volume, Number).
	FindPublishedByNumber(ctx context.Context, journalID uint, volume, number *int) (*models.Issue, error)
	List(ctx context.Context, journalID uint) ([]models.Issue, error)
}

// ArticleRepository verwaltet Artikel. Delete entfernt auch alle abhängigen
// Datensätze (Autoren, Darreichungsformen, Dateien, Freigaben, Verknüpfung).
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	FindPublishedByPubID(ctx context.Context, journalID uint, pubID string) (*models.Article, error)
	List(ctx context.Context, journalID uint) ([]models.Article, error)
}

// PublishedArticleRepository verwaltet die Verknüpfung Artikel -> Ausgabe.
type PublishedArticleRepository interface {
	Create(ctx context.Context, published *models.PublishedArticle) error
	// Resequence nummeriert die veröffentlichten Artikel einer Rubrik innerhalb
	// einer Ausgabe neu durch (1..n in bisheriger Reihenfolge).
	Resequence(ctx context.Context, sectionID, issueID uint) error
}

// AuthorRepository legt Autoren an.
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
}

// GalleyRepository verwaltet Darreichungsformen und ihre Medien.
type GalleyRepository interface {
	Create(ctx context.Context, galley *models.Galley) error
	AddImage(ctx context.Context, image *models.GalleyImage) error
	// Images liefert die Medienliste einer Darreichungsform in Anlage-Reihenfolge.
	Images(ctx context.Context, galleyID uint) ([]models.GalleyImage, error)
}

// FileRepository verwaltet die Metadaten gespeicherter Dateien.
type FileRepository interface {
	Create(ctx context.Context, file *models.ArticleFile) error
	Update(ctx context.Context, file *models.ArticleFile) error
}

// SignoffRepository legt Workflow-Freigaben an.
type SignoffRepository interface {
	Create(ctx context.Context, signoff *models.Signoff) error
}

// UserRepository löst Benutzer über ihren Benutzernamen auf.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// EventLogRepository hängt Import-Protokolleinträge an.
type EventLogRepository interface {
	Append(ctx context.Context, event *models.ImportEvent) error
}

// Set bündelt alle Repositories für die Übergabe an die Services.
type Set struct {
	Journals  JournalRepository
	Sections  SectionRepository
	Issues    IssueRepository
	Articles  ArticleRepository
	Published PublishedArticleRepository
	Authors   AuthorRepository
	Galleys   GalleyRepository
	Files     FileRepository
	Signoffs  SignoffRepository
	Users     UserRepository
	Events    EventLogRepository
}
