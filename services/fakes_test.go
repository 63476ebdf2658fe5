package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"

	"metapress-import/config"
	"metapress-import/metapress"
	"metapress-import/models"
	"metapress-import/repository"
	"metapress-import/search"
	"metapress-import/storage"
)

// memDB ist der gemeinsame In-Memory-Zustand aller Repository-Fakes.
// Löschungen werden für die Kompensations-Tests mitprotokolliert.
type memDB struct {
	nextID uint

	journals  []models.Journal
	sections  []models.Section
	issues    map[uint]*models.Issue
	articles  map[uint]*models.Article
	published []models.PublishedArticle
	authors   []models.Author
	galleys   []models.Galley
	images    []models.GalleyImage
	files     []models.ArticleFile
	signoffs  []models.Signoff
	users     []models.User
	events    []models.ImportEvent

	deleted []string

	failPublishedCreate error
	failSignoffCreate   error
}

func newMemDB() *memDB {
	return &memDB{
		issues:   make(map[uint]*models.Issue),
		articles: make(map[uint]*models.Article),
	}
}

func (m *memDB) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memDB) repoSet() repository.Set {
	return repository.Set{
		Journals:  fakeJournals{m},
		Sections:  fakeSections{m},
		Issues:    fakeIssues{m},
		Articles:  fakeArticles{m},
		Published: fakePublished{m},
		Authors:   fakeAuthors{m},
		Galleys:   fakeGalleys{m},
		Files:     fakeFiles{m},
		Signoffs:  fakeSignoffs{m},
		Users:     fakeUsers{m},
		Events:    fakeEvents{m},
	}
}

type fakeJournals struct{ db *memDB }

func (f fakeJournals) FindByPath(_ context.Context, p string) (*models.Journal, error) {
	for i := range f.db.journals {
		if f.db.journals[i].Path == p {
			return &f.db.journals[i], nil
		}
	}
	return nil, nil
}

func (f fakeJournals) Create(_ context.Context, journal *models.Journal) error {
	journal.ID = f.db.id()
	f.db.journals = append(f.db.journals, *journal)
	return nil
}

func (f fakeJournals) List(_ context.Context) ([]models.Journal, error) {
	return f.db.journals, nil
}

type fakeSections struct{ db *memDB }

func (f fakeSections) ListByJournal(_ context.Context, journalID uint) ([]models.Section, error) {
	var out []models.Section
	for _, s := range f.db.sections {
		if s.JournalID == journalID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f fakeSections) Create(_ context.Context, section *models.Section) error {
	section.ID = f.db.id()
	f.db.sections = append(f.db.sections, *section)
	return nil
}

type fakeIssues struct{ db *memDB }

func (f fakeIssues) Create(_ context.Context, issue *models.Issue) error {
	issue.ID = f.db.id()
	f.db.issues[issue.ID] = issue
	return nil
}

func (f fakeIssues) Update(_ context.Context, issue *models.Issue) error {
	if _, ok := f.db.issues[issue.ID]; !ok {
		return fmt.Errorf("issue %d nicht vorhanden", issue.ID)
	}
	f.db.issues[issue.ID] = issue
	return nil
}

func (f fakeIssues) Delete(_ context.Context, id uint) error {
	delete(f.db.issues, id)
	f.db.deleted = append(f.db.deleted, fmt.Sprintf("issue:%d", id))
	return nil
}

func (f fakeIssues) FindPublishedByNumber(_ context.Context, journalID uint, volume, number *int) (*models.Issue, error) {
	for _, issue := range f.db.issues {
		if issue.JournalID == journalID && issue.Published &&
			intpEqual(issue.Volume, volume) && intpEqual(issue.Number, number) {
			return issue, nil
		}
	}
	return nil, nil
}

func (f fakeIssues) List(_ context.Context, journalID uint) ([]models.Issue, error) {
	var out []models.Issue
	for _, issue := range f.db.issues {
		if issue.JournalID == journalID {
			out = append(out, *issue)
		}
	}
	return out, nil
}

type fakeArticles struct{ db *memDB }

func (f fakeArticles) Create(_ context.Context, article *models.Article) error {
	article.ID = f.db.id()
	f.db.articles[article.ID] = article
	return nil
}

func (f fakeArticles) Update(_ context.Context, article *models.Article) error {
	if _, ok := f.db.articles[article.ID]; !ok {
		return fmt.Errorf("artikel %d nicht vorhanden", article.ID)
	}
	f.db.articles[article.ID] = article
	return nil
}

func (f fakeArticles) Delete(_ context.Context, id uint) error {
	db := f.db
	delete(db.articles, id)
	db.authors = dropWhere(db.authors, func(a models.Author) bool { return a.ArticleID == id })
	db.signoffs = dropWhere(db.signoffs, func(s models.Signoff) bool { return s.ArticleID == id })
	db.files = dropWhere(db.files, func(fl models.ArticleFile) bool { return fl.ArticleID == id })
	for _, g := range db.galleys {
		if g.ArticleID == id {
			galleyID := g.ID
			db.images = dropWhere(db.images, func(i models.GalleyImage) bool { return i.GalleyID == galleyID })
		}
	}
	db.galleys = dropWhere(db.galleys, func(g models.Galley) bool { return g.ArticleID == id })
	db.published = dropWhere(db.published, func(p models.PublishedArticle) bool { return p.ArticleID == id })
	db.deleted = append(db.deleted, fmt.Sprintf("article:%d", id))
	return nil
}

func (f fakeArticles) FindPublishedByPubID(_ context.Context, journalID uint, pubID string) (*models.Article, error) {
	for _, article := range f.db.articles {
		if article.JournalID == journalID && article.PubID == pubID {
			return article, nil
		}
	}
	return nil, nil
}

func (f fakeArticles) List(_ context.Context, journalID uint) ([]models.Article, error) {
	var out []models.Article
	for _, article := range f.db.articles {
		if article.JournalID == journalID {
			out = append(out, *article)
		}
	}
	return out, nil
}

type fakePublished struct{ db *memDB }

func (f fakePublished) Create(_ context.Context, published *models.PublishedArticle) error {
	if f.db.failPublishedCreate != nil {
		return f.db.failPublishedCreate
	}
	published.ID = f.db.id()
	f.db.published = append(f.db.published, *published)
	return nil
}

func (f fakePublished) Resequence(_ context.Context, sectionID, issueID uint) error {
	db := f.db
	var idx []int
	for i, p := range db.published {
		article, ok := db.articles[p.ArticleID]
		if !ok || p.IssueID != issueID {
			continue
		}
		if article.SectionID == nil || *article.SectionID != sectionID {
			continue
		}
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool {
		return db.published[idx[a]].Seq < db.published[idx[b]].Seq
	})
	for n, i := range idx {
		db.published[i].Seq = float64(n + 1)
	}
	return nil
}

type fakeAuthors struct{ db *memDB }

func (f fakeAuthors) Create(_ context.Context, author *models.Author) error {
	author.ID = f.db.id()
	f.db.authors = append(f.db.authors, *author)
	return nil
}

type fakeGalleys struct{ db *memDB }

func (f fakeGalleys) Create(_ context.Context, galley *models.Galley) error {
	galley.ID = f.db.id()
	f.db.galleys = append(f.db.galleys, *galley)
	return nil
}

func (f fakeGalleys) AddImage(_ context.Context, image *models.GalleyImage) error {
	image.ID = f.db.id()
	f.db.images = append(f.db.images, *image)
	return nil
}

func (f fakeGalleys) Images(_ context.Context, galleyID uint) ([]models.GalleyImage, error) {
	var out []models.GalleyImage
	for _, img := range f.db.images {
		if img.GalleyID == galleyID {
			out = append(out, img)
		}
	}
	return out, nil
}

type fakeFiles struct{ db *memDB }

func (f fakeFiles) Create(_ context.Context, file *models.ArticleFile) error {
	file.ID = f.db.id()
	f.db.files = append(f.db.files, *file)
	return nil
}

func (f fakeFiles) Update(_ context.Context, file *models.ArticleFile) error {
	for i := range f.db.files {
		if f.db.files[i].ID == file.ID {
			f.db.files[i] = *file
			return nil
		}
	}
	return fmt.Errorf("datei %d nicht vorhanden", file.ID)
}

type fakeSignoffs struct{ db *memDB }

func (f fakeSignoffs) Create(_ context.Context, signoff *models.Signoff) error {
	if f.db.failSignoffCreate != nil {
		return f.db.failSignoffCreate
	}
	signoff.ID = f.db.id()
	f.db.signoffs = append(f.db.signoffs, *signoff)
	return nil
}

type fakeUsers struct{ db *memDB }

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range f.db.users {
		if f.db.users[i].Username == username {
			return &f.db.users[i], nil
		}
	}
	return nil, nil
}

type fakeEvents struct{ db *memDB }

func (f fakeEvents) Append(_ context.Context, event *models.ImportEvent) error {
	event.ID = f.db.id()
	f.db.events = append(f.db.events, *event)
	return nil
}

func dropWhere[T any](items []T, match func(T) bool) []T {
	var out []T
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}

func intpEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeStore ist ein FileStore, der nichts hochlädt, aber die Quellen
// mitprotokolliert. Über err lassen sich Speicherfehler erzwingen.
type fakeStore struct {
	stored []string
	err    error
}

func (f *fakeStore) Store(_ context.Context, source, mimeType string) (*storage.StoredFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stored = append(f.stored, source)
	name := path.Base(strings.TrimRight(source, "/"))
	return &storage.StoredFile{
		Key:         "galleys/test/" + name,
		Link:        "https://s3.example.com/galleys/test/" + name,
		Size:        42,
		DerivedName: name,
	}, nil
}

func newTestService(db *memDB, store storage.FileStore) *ImportService {
	logger := zap.NewNop()
	return NewImportService(&config.Config{}, logger, db.repoSet(), store, search.NewLogIndex(logger))
}

func seedJournal(db *memDB, withSection bool) *models.Journal {
	journal := models.Journal{
		Path:             "demo",
		Name:             "Demo Journal of Applied Research",
		PrimaryLocale:    "en_US",
		SupportedLocales: models.StringList{"en_US", "de_DE"},
		LicenseURL:       "https://creativecommons.org/licenses/by/4.0/",
	}
	journal.ID = db.id()
	db.journals = append(db.journals, journal)
	if withSection {
		section := models.Section{JournalID: journal.ID, Title: "Articles", Seq: 1}
		section.ID = db.id()
		db.sections = append(db.sections, section)
	}
	return &db.journals[len(db.journals)-1]
}

func seedUser(db *memDB) *models.User {
	user := models.User{Username: "admin", FullName: "Import User", Email: "import@example.com"}
	user.ID = db.id()
	db.users = append(db.users, user)
	return &db.users[len(db.users)-1]
}

func mustParse(t *testing.T, document string) *metapress.Node {
	t.Helper()
	doc, err := metapress.Parse(strings.NewReader(document))
	if err != nil {
		t.Fatalf("dokument nicht parsebar: %v", err)
	}
	return doc
}
