package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Arten der während eines Imports angelegten Entitäten.
const (
	DependentIssue   = "issue"
	DependentArticle = "article"
)

// DependentItem markiert eine in diesem Import-Versuch persistierte Entität.
type DependentItem struct {
	Kind string
	ID   uint
}

// DependentItems ist die transaktionsweite Liste der Kompensations-Kommandos
// eines Import-Versuchs. Es gibt keine Datenbank-Transaktion um den Import;
// das Zurückrollen ist reine Anwendungs-Kompensation. Stürzt der Prozess
// zwischen dem Persistieren und dem Track-Aufruf ab, bleibt die Entität als
// Waise zurück.
type DependentItems struct {
	items []DependentItem
}

// Track zeichnet eine erfolgreich angelegte Entität auf.
func (d *DependentItems) Track(kind string, id uint) {
	d.items = append(d.items, DependentItem{Kind: kind, ID: id})
}

// Items liefert die Einträge in Aufzeichnungs-Reihenfolge.
func (d *DependentItems) Items() []DependentItem {
	return d.items
}

// cleanupFailure löscht alle aufgezeichneten Entitäten in Aufzeichnungs-
// Reihenfolge. Eine unbekannte Art ist ein Programmierfehler. Fehler beim
// Löschen werden protokolliert; die Kompensation läuft trotzdem weiter.
func (s *ImportService) cleanupFailure(ctx context.Context, deps *DependentItems) {
	for _, item := range deps.Items() {
		var err error
		switch item.Kind {
		case DependentIssue:
			err = s.Repos.Issues.Delete(ctx, item.ID)
		case DependentArticle:
			err = s.Repos.Articles.Delete(ctx, item.ID)
		default:
			panic(fmt.Sprintf("cleanupFailure: unbehandelte Art %q", item.Kind))
		}
		if err != nil {
			s.Logger.Error("Kompensations-Löschung fehlgeschlagen",
				zap.String("kind", item.Kind),
				zap.Uint("id", item.ID),
				zap.Error(err))
		}
	}
}
