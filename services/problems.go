package services

import "fmt"

// ProblemKind klassifiziert die beim Import möglichen Fehlerzustände.
type ProblemKind string

const (
	// Fatal für den Ausgaben-Import (vor der Persistierung erkannt).
	ProblemInvalidDate ProblemKind = "invalidDate"
	// Weich: wird protokolliert, der Import läuft weiter.
	ProblemNoJournalSection ProblemKind = "noJournalSection"
	// Fatal für den Artikel-Import.
	ProblemDuplicatePublicArticleID ProblemKind = "duplicatePublicArticleId"
	ProblemTitleLocaleUnsupported   ProblemKind = "articleTitleLocaleUnsupported"
	ProblemTitleMissing             ProblemKind = "articleTitleMissing"
	ProblemCouldNotCopy             ProblemKind = "couldNotCopy"
	ProblemGalleyFileMissing        ProblemKind = "galleyFileMissing"
	// Vorbedingungen des Batch-Laufs.
	ProblemUnknownJournal        ProblemKind = "unknownJournal"
	ProblemUnknownUser           ProblemKind = "unknownUser"
	ProblemDirectoryDoesNotExist ProblemKind = "directoryDoesNotExist"
	ProblemUnableToParseDocument ProblemKind = "unableToParseDocument"
)

// Problem ist ein einzelner Befund eines Imports. Fatale Befunde werden
// zusätzlich als error zurückgegeben; weiche sammeln sich nur im Ergebnis.
type Problem struct {
	Kind   ProblemKind
	Detail string
}

func (p *Problem) Error() string {
	if p.Detail == "" {
		return string(p.Kind)
	}
	return fmt.Sprintf("%s: %s", p.Kind, p.Detail)
}

func newProblem(kind ProblemKind, format string, args ...interface{}) *Problem {
	return &Problem{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
