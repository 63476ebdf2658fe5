package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"metapress-import/models"
)

// Feste Beschriftungen der Darreichungsformen.
const (
	galleyLabelPrimary = "PDF"
	galleyLabelMarkup  = "HTML"
)

// importGalleys legt die Darreichungsformen des Artikels an: den Volltext
// (lokale Datei vor FullTextURL) und, falls vorhanden, die begleitende
// HTML-Datei samt Medienordner. Jeder Fehler ist für den Artikel-Import fatal.
func (s *ImportService) importGalleys(ctx context.Context, article *models.Article, galleyURL, galleyFileName string, files StagedFiles) error {
	source := files.Submission
	if source == "" {
		source = galleyURL
	}
	if source == "" {
		return newProblem(ProblemCouldNotCopy, "keine Volltext-Quelle für Artikel %d", article.ID)
	}

	sequence := 1
	file, err := s.storeArticleFile(ctx, article, source, "application/pdf", galleyFileName)
	if err != nil {
		return err
	}
	galley := &models.Galley{
		ArticleID: article.ID,
		FileID:    file.ID,
		Label:     galleyLabelPrimary,
		Locale:    article.Locale,
		Seq:       sequence,
		FileName:  file.OriginalFileName,
	}
	if err := s.Repos.Galleys.Create(ctx, galley); err != nil {
		return fmt.Errorf("fehler beim Anlegen der Darreichungsform: %w", err)
	}

	if files.Markup != "" {
		sequence++
		if err := s.importMarkupGalley(ctx, article, files, sequence); err != nil {
			return err
		}
	}
	return nil
}

// importMarkupGalley legt die HTML-Darreichungsform an und hängt die Dateien
// des Medienordners an sie an.
func (s *ImportService) importMarkupGalley(ctx context.Context, article *models.Article, files StagedFiles, sequence int) error {
	file, err := s.storeArticleFile(ctx, article, files.Markup, "text/html", "")
	if err != nil {
		return err
	}
	galley := &models.Galley{
		ArticleID: article.ID,
		FileID:    file.ID,
		Label:     galleyLabelMarkup,
		Locale:    article.Locale,
		Seq:       sequence,
		FileName:  file.OriginalFileName,
	}
	if err := s.Repos.Galleys.Create(ctx, galley); err != nil {
		return fmt.Errorf("fehler beim Anlegen der HTML-Darreichungsform: %w", err)
	}

	if files.Attachments == "" {
		return nil
	}
	if _, err := os.Stat(files.Attachments); err != nil {
		return nil
	}
	return s.importAttachments(ctx, article, galley, files.Attachments)
}

// importAttachments speichert jede reguläre, nicht versteckte Datei des
// Ordners, verknüpft sie mit der Darreichungsform und frischt deren
// Medienliste nach jedem Zugang auf.
func (s *ImportService) importAttachments(ctx context.Context, article *models.Article, galley *models.Galley, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return newProblem(ProblemCouldNotCopy, "medienordner %s nicht lesbar: %v", dir, err)
	}
	folder := filepath.Base(dir)

	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		mimeType := imageMimeType(entry.Name())
		stored, err := s.Store.Store(ctx, filepath.Join(dir, entry.Name()), mimeType)
		if err != nil {
			return newProblem(ProblemCouldNotCopy, "medium %s: %v", entry.Name(), err)
		}

		file := &models.ArticleFile{
			ArticleID:        article.ID,
			OriginalFileName: folder + "/" + entry.Name(),
			MimeType:         mimeType,
			Size:             stored.Size,
			S3Key:            stored.Key,
			S3Link:           stored.Link,
		}
		if err := s.Repos.Files.Create(ctx, file); err != nil {
			return fmt.Errorf("fehler beim Anlegen der Medien-Datei: %w", err)
		}

		image := &models.GalleyImage{GalleyID: galley.ID, FileID: file.ID, MimeType: mimeType}
		if err := s.Repos.Galleys.AddImage(ctx, image); err != nil {
			return fmt.Errorf("fehler beim Verknüpfen des Mediums: %w", err)
		}

		images, err := s.Repos.Galleys.Images(ctx, galley.ID)
		if err != nil {
			return fmt.Errorf("fehler beim Auffrischen der Medienliste: %w", err)
		}
		galley.Images = images
	}

	s.Logger.Info("Medienordner importiert",
		zap.String("dir", dir),
		zap.Int("count", len(galley.Images)),
		zap.Uint("galley_id", galley.ID))
	return nil
}

// storeArticleFile legt die Quelle im Objektspeicher ab und erzeugt die
// Datei-Metadaten. Der deklarierte Name überschreibt den aus dem Quellpfad
// abgeleiteten.
func (s *ImportService) storeArticleFile(ctx context.Context, article *models.Article, source, mimeType, declaredName string) (*models.ArticleFile, error) {
	stored, err := s.Store.Store(ctx, source, mimeType)
	if err != nil {
		return nil, newProblem(ProblemCouldNotCopy, "quelle %s: %v", source, err)
	}

	name := declaredName
	if name == "" {
		name = stored.DerivedName
	}
	file := &models.ArticleFile{
		ArticleID:        article.ID,
		OriginalFileName: name,
		MimeType:         mimeType,
		Size:             stored.Size,
		S3Key:            stored.Key,
		S3Link:           stored.Link,
	}
	if err := s.Repos.Files.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("fehler beim Anlegen der Datei-Metadaten: %w", err)
	}
	if file.ID == 0 {
		return nil, newProblem(ProblemGalleyFileMissing,
			"keine Datei-Kennung für Artikel %q", article.LocalizedTitle())
	}
	return file, nil
}

// imageMimeType leitet den Mime-Typ eines Mediums aus der Dateiendung ab.
// jpg wird auf den kanonischen JPEG-Typ abgebildet, alles andere wörtlich
// auf image/<endung>.
func imageMimeType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "jpg" {
		return "image/jpeg"
	}
	return "image/" + ext
}
