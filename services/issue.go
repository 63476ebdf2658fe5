package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"metapress-import/metapress"
	"metapress-import/models"
)

// IssueImport ist das Ergebnis eines Ausgaben-Imports.
type IssueImport struct {
	Issue *models.Issue
	// Existing zeigt an, dass eine bereits veröffentlichte Ausgabe mit
	// derselben (Volume, Number)-Kombination wiederverwendet wurde.
	Existing bool
	Problems []Problem
}

// ImportIssue legt die im Dokument beschriebene Ausgabe an. Existiert in der
// Zeitschrift bereits eine veröffentlichte Ausgabe mit derselben Band- und
// Heftnummer, wird diese unverändert zurückgegeben und nichts angelegt.
// Validierungsfehler vor dem Persistieren brechen ohne Kompensation ab;
// Fehler danach rollen die angelegte Ausgabe zurück.
func (s *ImportService) ImportIssue(ctx context.Context, journal *models.Journal, doc *metapress.Node) (IssueImport, error) {
	issueNode := metapress.IssueNode(doc)
	if issueNode == nil {
		p := newProblem(ProblemUnableToParseDocument, "dokument enthält kein Issue-Element")
		return IssueImport{Problems: []Problem{*p}}, p
	}

	volume := parseNumber(metapress.VolumeNumber(doc))
	number := parseNumber(metapress.IssueNumber(doc))

	existing, err := s.Repos.Issues.FindPublishedByNumber(ctx, journal.ID, volume, number)
	if err != nil {
		return IssueImport{}, fmt.Errorf("fehler bei der Ausgaben-Suche: %w", err)
	}
	if existing != nil {
		s.Logger.Info("Ausgabe bereits vorhanden, Import wird übersprungen",
			zap.Uint("issue_id", existing.ID),
			zap.String("journal", journal.Path))
		return IssueImport{Issue: existing, Existing: true}, nil
	}

	issue := &models.Issue{
		JournalID:    journal.ID,
		Volume:       volume,
		Number:       number,
		AccessStatus: models.IssueAccessOpen,
	}

	issueInfo := issueNode.Child("IssueInfo")

	// IssueNumberBegin überschreibt eine etwaige Heftnummer aus dem Pfad.
	if n := parseNumber(issueInfo.Child("IssueNumberBegin").Value()); n != nil {
		issue.Number = n
	}

	if pubDate := issueInfo.Child("IssuePublicationDate"); pubDate != nil {
		coverDate := pubDate.Child("CoverDate")

		published, err := composeDate(coverDate.Attr("Year"), coverDate.Attr("Month"), coverDate.Attr("Day"))
		if err != nil {
			p := newProblem(ProblemInvalidDate, "ungültiges Erscheinungsdatum %s-%s-%s",
				coverDate.Attr("Year"), coverDate.Attr("Month"), coverDate.Attr("Day"))
			return IssueImport{Problems: []Problem{*p}}, p
		}
		issue.Year, _ = strconv.Atoi(coverDate.Attr("Year"))
		issue.DatePublished = &published
		issue.Published = true

		if coverDisplay := pubDate.Child("CoverDisplay"); coverDisplay != nil {
			issue.ShowTitle = true
			issue.Title.Set(journal.PrimaryLocale, coverDisplay.Value())
		}
	}

	deps := &DependentItems{}
	if err := s.Repos.Issues.Create(ctx, issue); err != nil {
		return IssueImport{}, fmt.Errorf("fehler beim Anlegen der Ausgabe: %w", err)
	}
	deps.Track(DependentIssue, issue.ID)

	if err := s.Repos.Issues.Update(ctx, issue); err != nil {
		s.cleanupFailure(ctx, deps)
		return IssueImport{}, fmt.Errorf("fehler beim Speichern der Ausgabe: %w", err)
	}

	s.Logger.Info("Ausgabe importiert",
		zap.Uint("issue_id", issue.ID),
		zap.String("journal", journal.Path),
		zap.Intp("volume", volume),
		zap.Intp("number", issue.Number))
	return IssueImport{Issue: issue}, nil
}

// parseNumber liefert den Wert als *int, wenn er numerisch ist, sonst nil.
func parseNumber(value string) *int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
