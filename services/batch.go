package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"metapress-import/metapress"
	"metapress-import/models"
)

// BatchItemResult ist das strukturierte Ergebnis eines Import-Ordners.
type BatchItemResult struct {
	Directory string    `json:"directory"`
	IssueID   uint      `json:"issue_id,omitempty"`
	ArticleID uint      `json:"article_id,omitempty"`
	Problems  []Problem `json:"problems,omitempty"`
	Err       error     `json:"-"`
}

// BatchResult fasst einen Batch-Lauf zusammen.
type BatchResult struct {
	Items    []BatchItemResult `json:"items"`
	Imported int               `json:"imported"`
}

// RunDirectory importiert jeden nicht versteckten Unterordner des
// Verzeichnisses als eigenen Export (ein XML-Dokument plus Beilagen).
// Ein fehlgeschlagener Ordner bricht nie den ganzen Lauf ab.
func (s *ImportService) RunDirectory(ctx context.Context, dir, username string) (BatchResult, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return BatchResult{}, newProblem(ProblemDirectoryDoesNotExist, "verzeichnis %s existiert nicht", dir)
	}

	user, err := s.Repos.Users.FindByUsername(ctx, username)
	if err != nil {
		return BatchResult{}, err
	}
	if user == nil {
		return BatchResult{}, newProblem(ProblemUnknownUser, "benutzer %s unbekannt", username)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, newProblem(ProblemDirectoryDoesNotExist, "verzeichnis %s nicht lesbar", dir)
	}

	var result BatchResult
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		item := s.runItem(ctx, filepath.Join(dir, entry.Name()), user)
		if item.Err != nil {
			s.Logger.Error("Import-Ordner fehlgeschlagen",
				zap.String("dir", item.Directory),
				zap.Error(item.Err))
		} else if item.ArticleID != 0 {
			result.Imported++
		}
		result.Items = append(result.Items, item)
	}

	s.Logger.Info("Batch-Lauf abgeschlossen",
		zap.String("dir", dir),
		zap.Int("items", len(result.Items)),
		zap.Int("imported", result.Imported))
	return result, nil
}

// runItem importiert einen einzelnen Export-Ordner: das XML-Dokument, eine
// optionale HTML-Beilage samt Medien-Unterordner und die verbleibende Datei
// als lokal bereitgestellten Volltext.
func (s *ImportService) runItem(ctx context.Context, dir string, user *models.User) BatchItemResult {
	item := BatchItemResult{Directory: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		item.Err = newProblem(ProblemDirectoryDoesNotExist, "verzeichnis %s nicht lesbar", dir)
		return item
	}

	var docPath string
	var files StagedFiles
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if entry.IsDir() {
			files.Attachments = full
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xml":
			docPath = full
		case ".html", ".htm":
			files.Markup = full
		default:
			files.Submission = full
		}
	}

	if docPath == "" {
		item.Err = newProblem(ProblemUnableToParseDocument, "kein XML-Dokument in %s", dir)
		return item
	}
	doc, err := metapress.ParseFile(docPath)
	if err != nil {
		item.Err = newProblem(ProblemUnableToParseDocument, "%v", err)
		return item
	}

	code := metapress.JournalCode(doc)
	journal, err := s.Repos.Journals.FindByPath(ctx, code)
	if err != nil {
		item.Err = err
		return item
	}
	if journal == nil {
		item.Err = newProblem(ProblemUnknownJournal, "zeitschrift %q unbekannt", code)
		return item
	}

	issueRes, err := s.ImportIssue(ctx, journal, doc)
	item.Problems = append(item.Problems, issueRes.Problems...)
	if err != nil {
		item.Err = err
		return item
	}
	item.IssueID = issueRes.Issue.ID

	articleRes, err := s.ImportArticle(ctx, journal, doc, issueRes.Issue, files, user)
	item.Problems = append(item.Problems, articleRes.Problems...)
	if err != nil {
		item.Err = err
		return item
	}
	if articleRes.Article != nil {
		item.ArticleID = articleRes.Article.ID
	}
	return item
}
