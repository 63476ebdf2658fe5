package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchDocument = `
<Journal>
  <JournalInfo><JournalCode>demo</JournalCode></JournalInfo>
  <Volume>
    <VolumeInfo><VolumeNumber>12</VolumeNumber></VolumeInfo>
    <Issue>
      <IssueInfo>
        <IssueNumberBegin>3</IssueNumberBegin>
        <IssuePublicationDate>
          <CoverDate Year="2013" Month="3" Day="5"/>
        </IssuePublicationDate>
      </IssueInfo>
      <Article>
        <ArticleInfo>
          <ArticleTitle Language="En">Batch Imported Study</ArticleTitle>
          <FullTextURL>https://example.com/batch.pdf</FullTextURL>
        </ArticleInfo>
      </Article>
    </Issue>
  </Volume>
</Journal>`

func writeExportDir(t *testing.T, root, name, document string, withPDF bool) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(dir, 0o755))
	if document != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "export.xml"), []byte(document), 0o644))
	}
	if withPDF {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fulltext.pdf"), []byte("%PDF"), 0o644))
	}
	return dir
}

func TestRunDirectory(t *testing.T) {
	root := t.TempDir()
	writeExportDir(t, root, "issue-12-3", batchDocument, true)

	db := newMemDB()
	seedJournal(db, true)
	seedUser(db)
	store := &fakeStore{}
	svc := newTestService(db, store)

	result, err := svc.RunDirectory(context.Background(), root, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Items, 1)
	assert.NoError(t, result.Items[0].Err)
	assert.NotZero(t, result.Items[0].IssueID)
	assert.NotZero(t, result.Items[0].ArticleID)

	// Die lokale Datei gewinnt gegen die FullTextURL.
	require.Len(t, store.stored, 1)
	assert.Equal(t, filepath.Join(root, "issue-12-3", "fulltext.pdf"), store.stored[0])
	assert.Len(t, db.articles, 1)
	assert.Len(t, db.issues, 1)
}

func TestRunDirectoryFailedItemDoesNotAbortBatch(t *testing.T) {
	root := t.TempDir()
	writeExportDir(t, root, "a-broken", "", true) // kein XML-Dokument
	writeExportDir(t, root, "b-good", batchDocument, true)

	db := newMemDB()
	seedJournal(db, true)
	seedUser(db)
	svc := newTestService(db, &fakeStore{})

	result, err := svc.RunDirectory(context.Background(), root, "admin")
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Imported)

	var broken, good *BatchItemResult
	for i := range result.Items {
		switch filepath.Base(result.Items[i].Directory) {
		case "a-broken":
			broken = &result.Items[i]
		case "b-good":
			good = &result.Items[i]
		}
	}
	require.NotNil(t, broken)
	require.NotNil(t, good)

	var p *Problem
	require.ErrorAs(t, broken.Err, &p)
	assert.Equal(t, ProblemUnableToParseDocument, p.Kind)
	assert.NoError(t, good.Err)
	assert.NotZero(t, good.ArticleID)
}

func TestRunDirectoryUnknownJournal(t *testing.T) {
	root := t.TempDir()
	writeExportDir(t, root, "issue", batchDocument, true)

	db := newMemDB()
	seedUser(db) // keine Zeitschrift "demo"
	svc := newTestService(db, &fakeStore{})

	result, err := svc.RunDirectory(context.Background(), root, "admin")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	var p *Problem
	require.ErrorAs(t, result.Items[0].Err, &p)
	assert.Equal(t, ProblemUnknownJournal, p.Kind)
}

func TestRunDirectoryPreconditions(t *testing.T) {
	db := newMemDB()
	seedJournal(db, true)
	seedUser(db)
	svc := newTestService(db, &fakeStore{})

	_, err := svc.RunDirectory(context.Background(), "/does/not/exist", "admin")
	var p *Problem
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemDirectoryDoesNotExist, p.Kind)

	_, err = svc.RunDirectory(context.Background(), t.TempDir(), "nobody")
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemUnknownUser, p.Kind)
}

func TestRunDirectorySkipsLooseFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.txt"), []byte("x"), 0o644))
	writeExportDir(t, root, ".partial", batchDocument, true)

	db := newMemDB()
	seedJournal(db, true)
	seedUser(db)
	svc := newTestService(db, &fakeStore{})

	result, err := svc.RunDirectory(context.Background(), root, "admin")
	require.NoError(t, err)
	assert.Empty(t, result.Items)
}
