package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metapress-import/models"
)

func TestCleanupFailureDeletesInRecordedOrder(t *testing.T) {
	db := newMemDB()
	svc := newTestService(db, &fakeStore{})

	issue := &models.Issue{JournalID: 1}
	require.NoError(t, db.repoSet().Issues.Create(context.Background(), issue))
	article := &models.Article{JournalID: 1}
	require.NoError(t, db.repoSet().Articles.Create(context.Background(), article))

	deps := &DependentItems{}
	deps.Track(DependentArticle, article.ID)
	deps.Track(DependentIssue, issue.ID)

	svc.cleanupFailure(context.Background(), deps)

	assert.Empty(t, db.articles)
	assert.Empty(t, db.issues)
	require.Len(t, db.deleted, 2)
	assert.Equal(t, "article:2", db.deleted[0])
	assert.Equal(t, "issue:1", db.deleted[1])
}

func TestCleanupFailurePanicsOnUnknownKind(t *testing.T) {
	db := newMemDB()
	svc := newTestService(db, &fakeStore{})

	deps := &DependentItems{}
	deps.Track("galaxy", 7)

	require.Panics(t, func() {
		svc.cleanupFailure(context.Background(), deps)
	})
}

func TestDependentItemsKeepOrder(t *testing.T) {
	deps := &DependentItems{}
	deps.Track(DependentIssue, 1)
	deps.Track(DependentArticle, 2)
	deps.Track(DependentArticle, 3)

	items := deps.Items()
	require.Len(t, items, 3)
	assert.Equal(t, DependentItem{Kind: DependentIssue, ID: 1}, items[0])
	assert.Equal(t, DependentItem{Kind: DependentArticle, ID: 2}, items[1])
	assert.Equal(t, DependentItem{Kind: DependentArticle, ID: 3}, items[2])
}
