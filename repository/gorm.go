package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"metapress-import/models"
)

// NewGormSet verdrahtet alle Repositories gegen dieselbe Datenbank.
func NewGormSet(db *gorm.DB) Set {
	return Set{
		Journals:  &GormJournals{DB: db},
		Sections:  &GormSections{DB: db},
		Issues:    &GormIssues{DB: db},
		Articles:  &GormArticles{DB: db},
		Published: &GormPublished{DB: db},
		Authors:   &GormAuthors{DB: db},
		Galleys:   &GormGalleys{DB: db},
		Files:     &GormFiles{DB: db},
		Signoffs:  &GormSignoffs{DB: db},
		Users:     &GormUsers{DB: db},
		Events:    &GormEvents{DB: db},
	}
}

func firstOrNil[T any](err error, record *T) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GormJournals implementiert JournalRepository.
type GormJournals struct{ DB *gorm.DB }

func (r *GormJournals) FindByPath(ctx context.Context, path string) (*models.Journal, error) {
	var journal models.Journal
	err := r.DB.WithContext(ctx).Preload("Sections").Where("path = ?", path).First(&journal).Error
	return firstOrNil(err, &journal)
}

func (r *GormJournals) Create(ctx context.Context, journal *models.Journal) error {
	return r.DB.WithContext(ctx).Create(journal).Error
}

func (r *GormJournals) List(ctx context.Context) ([]models.Journal, error) {
	var journals []models.Journal
	err := r.DB.WithContext(ctx).Preload("Sections").Find(&journals).Error
	return journals, err
}

// GormSections implementiert SectionRepository.
type GormSections struct{ DB *gorm.DB }

func (r *GormSections) ListByJournal(ctx context.Context, journalID uint) ([]models.Section, error) {
	var sections []models.Section
	err := r.DB.WithContext(ctx).Where("journal_id = ?", journalID).Order("seq, id").Find(&sections).Error
	return sections, err
}

func (r *GormSections) Create(ctx context.Context, section *models.Section) error {
	return r.DB.WithContext(ctx).Create(section).Error
}

// GormIssues implementiert IssueRepository.
type GormIssues struct{ DB *gorm.DB }

func (r *GormIssues) Create(ctx context.Context, issue *models.Issue) error {
	return r.DB.WithContext(ctx).Create(issue).Error
}

func (r *GormIssues) Update(ctx context.Context, issue *models.Issue) error {
	return r.DB.WithContext(ctx).Save(issue).Error
}

func (r *GormIssues) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Issue{}, id).Error
}

func (r *GormIssues) FindPublishedByNumber(ctx context.Context, journalID uint, volume, number *int) (*models.Issue, error) {
	query := r.DB.WithContext(ctx).Where("journal_id = ? AND published = ?", journalID, true)
	if volume != nil {
		query = query.Where("volume = ?", *volume)
	} else {
		query = query.Where("volume IS NULL")
	}
	if number != nil {
		query = query.Where("number = ?", *number)
	} else {
		query = query.Where("number IS NULL")
	}

	var issue models.Issue
	err := query.First(&issue).Error
	return firstOrNil(err, &issue)
}

func (r *GormIssues) List(ctx context.Context, journalID uint) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.DB.WithContext(ctx).Where("journal_id = ?", journalID).Order("year, volume, number").Find(&issues).Error
	return issues, err
}

// GormArticles implementiert ArticleRepository.
type GormArticles struct{ DB *gorm.DB }

func (r *GormArticles) Create(ctx context.Context, article *models.Article) error {
	return r.DB.WithContext(ctx).Create(article).Error
}

func (r *GormArticles) Update(ctx context.Context, article *models.Article) error {
	return r.DB.WithContext(ctx).Save(article).Error
}

// Delete entfernt den Artikel samt aller abhängigen Datensätze in einer Transaktion.
func (r *GormArticles) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var galleyIDs []uint
		if err := tx.Model(&models.Galley{}).Where("article_id = ?", id).Pluck("id", &galleyIDs).Error; err != nil {
			return err
		}
		if len(galleyIDs) > 0 {
			if err := tx.Where("galley_id IN ?", galleyIDs).Delete(&models.GalleyImage{}).Error; err != nil {
				return err
			}
		}
		for _, model := range []interface{}{
			&models.Galley{}, &models.ArticleFile{}, &models.Author{},
			&models.Signoff{}, &models.PublishedArticle{},
		} {
			if err := tx.Where("article_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

func (r *GormArticles) FindPublishedByPubID(ctx context.Context, journalID uint, pubID string) (*models.Article, error) {
	var article models.Article
	err := r.DB.WithContext(ctx).
		Where("journal_id = ? AND pub_id = ? AND status = ?", journalID, pubID, models.ArticleStatusPublished).
		First(&article).Error
	return firstOrNil(err, &article)
}

func (r *GormArticles) List(ctx context.Context, journalID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.DB.WithContext(ctx).Where("journal_id = ?", journalID).Order("id").Find(&articles).Error
	return articles, err
}

// GormPublished implementiert PublishedArticleRepository.
type GormPublished struct{ DB *gorm.DB }

func (r *GormPublished) Create(ctx context.Context, published *models.PublishedArticle) error {
	return r.DB.WithContext(ctx).Create(published).Error
}

func (r *GormPublished) Resequence(ctx context.Context, sectionID, issueID uint) error {
	var pubs []models.PublishedArticle
	err := r.DB.WithContext(ctx).
		Joins("JOIN articles ON articles.id = published_articles.article_id").
		Where("published_articles.issue_id = ? AND articles.section_id = ?", issueID, sectionID).
		Order("published_articles.seq").
		Find(&pubs).Error
	if err != nil {
		return err
	}
	for i := range pubs {
		if err := r.DB.WithContext(ctx).
			Model(&models.PublishedArticle{}).
			Where("id = ?", pubs[i].ID).
			Update("seq", float64(i+1)).Error; err != nil {
			return err
		}
	}
	return nil
}

// GormAuthors implementiert AuthorRepository.
type GormAuthors struct{ DB *gorm.DB }

func (r *GormAuthors) Create(ctx context.Context, author *models.Author) error {
	return r.DB.WithContext(ctx).Create(author).Error
}

// GormGalleys implementiert GalleyRepository.
type GormGalleys struct{ DB *gorm.DB }

func (r *GormGalleys) Create(ctx context.Context, galley *models.Galley) error {
	return r.DB.WithContext(ctx).Create(galley).Error
}

func (r *GormGalleys) AddImage(ctx context.Context, image *models.GalleyImage) error {
	return r.DB.WithContext(ctx).Create(image).Error
}

func (r *GormGalleys) Images(ctx context.Context, galleyID uint) ([]models.GalleyImage, error) {
	var images []models.GalleyImage
	err := r.DB.WithContext(ctx).Where("galley_id = ?", galleyID).Order("id").Find(&images).Error
	return images, err
}

// GormFiles implementiert FileRepository.
type GormFiles struct{ DB *gorm.DB }

func (r *GormFiles) Create(ctx context.Context, file *models.ArticleFile) error {
	return r.DB.WithContext(ctx).Create(file).Error
}

func (r *GormFiles) Update(ctx context.Context, file *models.ArticleFile) error {
	return r.DB.WithContext(ctx).Save(file).Error
}

// GormSignoffs implementiert SignoffRepository.
type GormSignoffs struct{ DB *gorm.DB }

func (r *GormSignoffs) Create(ctx context.Context, signoff *models.Signoff) error {
	return r.DB.WithContext(ctx).Create(signoff).Error
}

// GormUsers implementiert UserRepository.
type GormUsers struct{ DB *gorm.DB }

func (r *GormUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return firstOrNil(err, &user)
}

// GormEvents implementiert EventLogRepository.
type GormEvents struct{ DB *gorm.DB }

func (r *GormEvents) Append(ctx context.Context, event *models.ImportEvent) error {
	return r.DB.WithContext(ctx).Create(event).Error
}
