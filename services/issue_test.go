package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metapress-import/models"
)

const issueDocument = `
<Journal>
  <JournalInfo><JournalCode>demo</JournalCode></JournalInfo>
  <Volume>
    <VolumeInfo><VolumeNumber>12</VolumeNumber></VolumeInfo>
    <Issue>
      <IssueInfo>
        <IssueNumberBegin>3</IssueNumberBegin>
        <IssuePublicationDate>
          <CoverDate Year="2013" Month="3" Day="5"/>
          <CoverDisplay>Spring 2013</CoverDisplay>
        </IssuePublicationDate>
      </IssueInfo>
    </Issue>
  </Volume>
</Journal>`

func TestImportIssue(t *testing.T) {
	db := newMemDB()
	journal := seedJournal(db, true)
	svc := newTestService(db, &fakeStore{})

	result, err := svc.ImportIssue(context.Background(), journal, mustParse(t, issueDocument))
	require.NoError(t, err)
	require.NotNil(t, result.Issue)
	assert.False(t, result.Existing)
	assert.Empty(t, result.Problems)

	issue := result.Issue
	require.NotNil(t, issue.Volume)
	assert.Equal(t, 12, *issue.Volume)
	require.NotNil(t, issue.Number)
	assert.Equal(t, 3, *issue.Number)
	assert.Equal(t, 2013, issue.Year)
	require.NotNil(t, issue.DatePublished)
	assert.Equal(t, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC), *issue.DatePublished)
	assert.True(t, issue.Published)
	assert.True(t, issue.ShowTitle)
	assert.Equal(t, "Spring 2013", issue.Title.Get("en_US"))
	assert.Equal(t, models.IssueAccessOpen, issue.AccessStatus)
	assert.Len(t, db.issues, 1)
}

func TestImportIssueReusesPublishedIssue(t *testing.T) {
	db := newMemDB()
	journal := seedJournal(db, true)
	svc := newTestService(db, &fakeStore{})

	first, err := svc.ImportIssue(context.Background(), journal, mustParse(t, issueDocument))
	require.NoError(t, err)

	second, err := svc.ImportIssue(context.Background(), journal, mustParse(t, issueDocument))
	require.NoError(t, err)
	assert.True(t, second.Existing)
	assert.Equal(t, first.Issue.ID, second.Issue.ID)
	assert.Len(t, db.issues, 1)
}

func TestImportIssueInvalidDate(t *testing.T) {
	doc := `
<Journal>
  <Volume>
    <VolumeInfo><VolumeNumber>12</VolumeNumber></VolumeInfo>
    <Issue>
      <IssueInfo>
        <IssueNumberBegin>3</IssueNumberBegin>
        <IssuePublicationDate>
          <CoverDate Year="2013" Month="3" Day="99"/>
        </IssuePublicationDate>
      </IssueInfo>
    </Issue>
  </Volume>
</Journal>`

	db := newMemDB()
	journal := seedJournal(db, true)
	svc := newTestService(db, &fakeStore{})

	result, err := svc.ImportIssue(context.Background(), journal, mustParse(t, doc))
	require.Error(t, err)

	var p *Problem
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemInvalidDate, p.Kind)
	require.Len(t, result.Problems, 1)
	assert.Equal(t, ProblemInvalidDate, result.Problems[0].Kind)

	// Vor dem Persistieren erkannt: es darf nichts angelegt worden sein.
	assert.Empty(t, db.issues)
	assert.Empty(t, db.deleted)
}

func TestImportIssueWithoutIssueElement(t *testing.T) {
	db := newMemDB()
	journal := seedJournal(db, true)
	svc := newTestService(db, &fakeStore{})

	_, err := svc.ImportIssue(context.Background(), journal, mustParse(t, `<Journal><Volume/></Journal>`))
	require.Error(t, err)

	var p *Problem
	require.ErrorAs(t, err, &p)
	assert.Equal(t, ProblemUnableToParseDocument, p.Kind)
}

func TestComposeDateZeroPads(t *testing.T) {
	got, err := composeDate("2013", "3", "5")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2013, 3, 5, 0, 0, 0, 0, time.UTC), got)

	_, err = composeDate("2013", "13", "05")
	assert.Error(t, err)
}
