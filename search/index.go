// Package search kapselt die Benachrichtigung des Suchindex nach einem Import.
// Die Aufrufe sind Fire-and-forget; der Import wertet keine Rückgaben aus.
package search

import (
	"go.uber.org/zap"

	"metapress-import/models"
)

// ArticleIndex wird nach einem erfolgreichen Import benachrichtigt.
type ArticleIndex interface {
	MetadataChanged(article *models.Article)
	FilesChanged(article *models.Article)
	Finished()
}

// LogIndex protokolliert die Index-Benachrichtigungen nur; die eigentliche
// Indizierung übernimmt ein externer Dienst.
type LogIndex struct {
	Logger *zap.Logger
}

// NewLogIndex erstellt eine neue Instanz des LogIndex.
func NewLogIndex(logger *zap.Logger) *LogIndex {
	return &LogIndex{Logger: logger}
}

func (l *LogIndex) MetadataChanged(article *models.Article) {
	l.Logger.Debug("Index: Artikel-Metadaten geändert", zap.Uint("article_id", article.ID))
}

func (l *LogIndex) FilesChanged(article *models.Article) {
	l.Logger.Debug("Index: Artikel-Dateien geändert", zap.Uint("article_id", article.ID))
}

func (l *LogIndex) Finished() {
	l.Logger.Debug("Index: Änderungen abgeschlossen")
}
