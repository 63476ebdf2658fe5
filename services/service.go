package services

import (
	"time"

	"go.uber.org/zap"

	"metapress-import/config"
	"metapress-import/repository"
	"metapress-import/search"
	"metapress-import/storage"
)

// ImportService orchestriert den Import einer Ausgabe samt Artikel aus einem
// Metapress-Export-Dokument in die Repositories.
type ImportService struct {
	Config *config.Config
	Logger *zap.Logger
	Repos  repository.Set
	Store  storage.FileStore
	Index  search.ArticleIndex
}

// NewImportService erstellt eine neue Instanz des ImportService.
func NewImportService(cfg *config.Config, logger *zap.Logger, repos repository.Set, store storage.FileStore, index search.ArticleIndex) *ImportService {
	return &ImportService{
		Config: cfg,
		Logger: logger,
		Repos:  repos,
		Store:  store,
		Index:  index,
	}
}

// composeDate baut aus den Attributen (Year, Month, Day) ein Datum.
// Einstellige Monate und Tage werden mit führender Null ergänzt.
func composeDate(year, month, day string) (time.Time, error) {
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return time.Parse("2006-01-02", year+"-"+month+"-"+day)
}

// looseDateLayouts sind die in Exporten beobachteten Datumsformate.
var looseDateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
	"January 2006",
}

// parseLooseDate versucht, einen Datums-Freitext zu lesen.
func parseLooseDate(value string) (time.Time, bool) {
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
