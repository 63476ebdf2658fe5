package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"metapress-import/metapress"
	"metapress-import/models"
)

// StagedFiles sind die neben dem Export-Dokument liegenden Dateien eines
// Import-Ordners.
type StagedFiles struct {
	// Lokal bereitgestellter Volltext; hat Vorrang vor der FullTextURL
	// des Dokuments.
	Submission string
	// Begleitende HTML-Datei für eine zweite Darreichungsform.
	Markup string
	// Ordner mit den eingebetteten Medien der HTML-Darreichungsform.
	Attachments string
}

// ArticleImport ist das Ergebnis eines Artikel-Imports. Ein nil-Artikel ohne
// Fehler bedeutet: das Dokument enthält keinen Artikel.
type ArticleImport struct {
	Article  *models.Article
	Problems []Problem
}

// ImportArticle importiert den Artikel des Dokuments in die bereits
// aufgelöste Ausgabe. Schlägt der Import nach dem Persistieren des Artikels
// fehl, werden alle in diesem Aufruf angelegten Entitäten kompensierend
// gelöscht; die übergebene Ausgabe wird von diesem Aufruf nie zurückgerollt.
func (s *ImportService) ImportArticle(ctx context.Context, journal *models.Journal, doc *metapress.Node, issue *models.Issue, files StagedFiles, user *models.User) (ArticleImport, error) {
	deps := &DependentItems{}
	result, err := s.handleArticleNode(ctx, journal, doc, issue, files, user, deps)
	if err != nil {
		s.cleanupFailure(ctx, deps)
	}
	return result, err
}

func (s *ImportService) handleArticleNode(ctx context.Context, journal *models.Journal, doc *metapress.Node, issue *models.Issue, files StagedFiles, user *models.User, deps *DependentItems) (ArticleImport, error) {
	articleNode := metapress.ArticleNode(doc)
	if articleNode == nil {
		return ArticleImport{}, nil
	}

	supported := []string(journal.SupportedLocales)
	now := time.Now()

	article := &models.Article{
		JournalID:          journal.ID,
		UserID:             user.ID,
		Locale:             journal.PrimaryLocale,
		Status:             models.ArticleStatusPublished,
		DateSubmitted:      &now,
		DateStatusModified: &now,
	}

	var problems []Problem
	fail := func(p *Problem) (ArticleImport, error) {
		problems = append(problems, *p)
		return ArticleImport{Problems: problems}, p
	}

	// Der Artikel landet in der ersten Rubrik der Zeitschrift. Fehlt jede
	// Rubrik, wird das nur als Befund festgehalten und weiter importiert;
	// die Neunummerierung entfällt dann.
	sections, err := s.Repos.Sections.ListByJournal(ctx, journal.ID)
	if err != nil {
		return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Laden der Rubriken: %w", err)
	}
	var section *models.Section
	if len(sections) > 0 {
		section = &sections[0]
		article.SectionID = &section.ID
	} else {
		problems = append(problems, Problem{Kind: ProblemNoJournalSection,
			Detail: fmt.Sprintf("zeitschrift %s hat keine Rubrik", journal.Path)})
		s.Logger.Warn("Zeitschrift hat keine Rubrik; Artikel wird ohne Rubrik importiert",
			zap.String("journal", journal.Path))
	}

	articleInfo := articleNode.Child("ArticleInfo")
	if articleInfo != nil {
		// Free="No" schaltet die bereits persistierte Ausgabe sofort auf
		// Subskriptions-Zugriff um. Die Ausgabe wird dafür nicht zusätzlich
		// zum Zurückrollen vorgemerkt.
		if articleInfo.Attr("Free") == "No" {
			issue.AccessStatus = models.IssueAccessSubscription
			if err := s.Repos.Issues.Update(ctx, issue); err != nil {
				return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Umstellen des Ausgaben-Zugriffs: %w", err)
			}
		}

		if doi := articleInfo.Child("ArticleDOI").Value(); doi != "" {
			other, err := s.Repos.Articles.FindPublishedByPubID(ctx, journal.ID, doi)
			if err != nil {
				return ArticleImport{Problems: problems}, fmt.Errorf("fehler bei der DOI-Suche: %w", err)
			}
			if other != nil {
				return fail(newProblem(ProblemDuplicatePublicArticleID,
					"DOI %s gehört bereits zu %q", doi, other.LocalizedTitle()))
			}
			article.PubID = doi
		}
	}

	firstPage := articleInfo.Child("ArticleFirstPage").Value()
	lastPage := articleInfo.Child("ArticleLastPage").Value()
	if firstPage != "" && lastPage != "" {
		article.Pages = firstPage + "-" + lastPage
	} else if firstPage != "" {
		article.Pages = firstPage
	}

	titleExists := false
	for _, node := range articleInfo.Children("ArticleTitle") {
		code := node.Attr("Language")
		found := false
		if code == "" {
			article.Title.Set(article.Locale, node.Value())
			found = true
		} else {
			for _, locale := range ResolveLocales(code, supported) {
				article.Title.Set(locale, node.Value())
				found = true
			}
		}
		if !found {
			return fail(newProblem(ProblemTitleLocaleUnsupported,
				"kein unterstütztes Locale für Sprachcode %q", code))
		}
		titleExists = true
	}
	if !titleExists || article.Title.Get(article.Locale) == "" {
		return fail(newProblem(ProblemTitleMissing,
			"kein Titel in der primären Locale %s", article.Locale))
	}

	// OnlineDate wird erst auf die Veröffentlichungs-Verknüpfung angewandt,
	// nicht auf den Artikel selbst.
	var publicationDate *time.Time
	if history := articleInfo.Child("ArticleHistory"); history != nil {
		if v := history.Child("ReceivedDate").Value(); v != "" {
			if t, ok := parseLooseDate(v); ok {
				article.DateSubmitted = &t
			} else {
				s.Logger.Warn("Eingangsdatum nicht lesbar", zap.String("value", v))
			}
		}
		if v := history.Child("OnlineDate").Value(); v != "" {
			if t, ok := parseLooseDate(v); ok {
				publicationDate = &t
			} else {
				s.Logger.Warn("Online-Datum nicht lesbar", zap.String("value", v))
			}
		}
	}

	header := articleNode.Child("ArticleHeader")
	if header != nil {
		s.applyAbstracts(article, header, supported)
		s.applyKeywords(article, header, supported)
		s.applyCitations(article, header)
	}

	if err := s.Repos.Articles.Create(ctx, article); err != nil {
		return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Anlegen des Artikels: %w", err)
	}
	deps.Track(DependentArticle, article.ID)

	if header != nil {
		if group := header.Child("AuthorGroup"); group != nil {
			for _, author := range extractAuthors(group, article.ID) {
				if err := s.Repos.Authors.Create(ctx, &author); err != nil {
					return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Anlegen eines Autors: %w", err)
				}
			}
		}
	}

	// Leere Freigabe-Platzhalter für alle Workflow-Stationen.
	for _, kind := range models.ImportSignoffKinds {
		signoff := &models.Signoff{ArticleID: article.ID, Kind: kind}
		if err := s.Repos.Signoffs.Create(ctx, signoff); err != nil {
			return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Anlegen der Freigabe %s: %w", kind, err)
		}
	}

	event := &models.ImportEvent{
		JournalID: journal.ID,
		ArticleID: article.ID,
		UserID:    user.ID,
		Message:   fmt.Sprintf("Artikel %d durch %s importiert", article.ID, user.Username),
	}
	if err := s.Repos.Events.Append(ctx, event); err != nil {
		return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Protokollieren des Imports: %w", err)
	}

	published := &models.PublishedArticle{
		ArticleID:     article.ID,
		IssueID:       issue.ID,
		DatePublished: publicationDate,
		AccessStatus:  models.ArticleAccessIssueDefault,
		Seq:           models.ArticleSeqEnd,
	}
	if err := s.Repos.Published.Create(ctx, published); err != nil {
		return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Verknüpfen mit der Ausgabe: %w", err)
	}
	if section != nil {
		if err := s.Repos.Published.Resequence(ctx, section.ID, issue.ID); err != nil {
			return ArticleImport{Problems: problems}, fmt.Errorf("fehler bei der Neunummerierung: %w", err)
		}
	}

	// Rechte-Initialisierung, nachdem Status und Autoren final sind.
	article.CopyrightHolder = journal.CopyrightHolder
	if article.CopyrightHolder == "" {
		article.CopyrightHolder = journal.Name
	}
	article.CopyrightYear = issue.Year
	article.LicenseURL = journal.LicenseURL
	if err := s.Repos.Articles.Update(ctx, article); err != nil {
		return ArticleImport{Problems: problems}, fmt.Errorf("fehler beim Speichern der Artikel-Metadaten: %w", err)
	}

	if articleInfo != nil {
		galleyURL := articleInfo.Child("FullTextURL").Value()
		galleyFileName := articleInfo.Child("FullTextFileName").Value()
		if err := s.importGalleys(ctx, article, galleyURL, galleyFileName, files); err != nil {
			if p, ok := err.(*Problem); ok {
				return fail(p)
			}
			return ArticleImport{Problems: problems}, err
		}
	}

	s.Index.MetadataChanged(article)
	s.Index.FilesChanged(article)
	s.Index.Finished()

	s.Logger.Info("Artikel importiert",
		zap.Uint("article_id", article.ID),
		zap.Uint("issue_id", issue.ID),
		zap.String("journal", journal.Path))
	return ArticleImport{Article: article, Problems: problems}, nil
}

// applyAbstracts übernimmt die Zusammenfassungen. Anders als beim Titel ist
// ein Sprachcode ohne passendes Locale kein Fehler: der Wert entfällt.
func (s *ImportService) applyAbstracts(article *models.Article, header *metapress.Node, supported []string) {
	for _, node := range header.Children("Abstract") {
		code := node.Attr("Language")
		if code == "" {
			article.Abstract.Set(article.Locale, node.Value())
			continue
		}
		for _, locale := range ResolveLocales(code, supported) {
			article.Abstract.Set(locale, node.Value())
		}
	}
}

// applyKeywords sammelt die Schlagwörter je Locale und setzt sie Semikolon-
// verkettet, nachdem alle Gruppen verarbeitet sind.
func (s *ImportService) applyKeywords(article *models.Article, header *metapress.Node, supported []string) {
	grouped := make(map[string][]string)
	for _, group := range header.Children("KeywordGroup") {
		code := group.Attr("Language")
		var locales []string
		if code == "" {
			locales = []string{article.Locale}
		} else {
			locales = ResolveLocales(code, supported)
		}
		if len(locales) == 0 {
			continue
		}
		for _, keyword := range group.Children("Keyword") {
			value := keyword.Value()
			if value == "" {
				continue
			}
			for _, locale := range locales {
				grouped[locale] = append(grouped[locale], value)
			}
		}
	}
	for locale, values := range grouped {
		article.Subject.Set(locale, strings.Join(values, ";"))
	}
}

// applyCitations verkettet die Literaturangaben in Dokumentreihenfolge.
// Jeder Eintrag endet mit dem konfigurierten Trennzeichen.
func (s *ImportService) applyCitations(article *models.Article, header *metapress.Node) {
	biblist := header.Child("biblist")
	if biblist == nil {
		return
	}
	separator := s.Config.CitationSeparator()

	var b strings.Builder
	for _, bib := range biblist.Children("bib-other") {
		b.WriteString(bib.Child("bibtext").Value())
		b.WriteString(separator)
	}
	article.Citations = b.String()
}
