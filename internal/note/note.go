package note

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"vaultshot/internal/editor"
	"vaultshot/internal/notify"
	"vaultshot/pkg/models"
)

type Outcome int

const (
	OutcomeDisabled Outcome = iota
	OutcomeInserted
	OutcomeNoDocument
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeNoDocument:
		return "no-document"
	case OutcomeFailed:
		return "failed"
	}
	return "disabled"
}

// Result reports what the inserter did and which note it touched.
type Result struct {
	Outcome  Outcome
	NotePath string
}

// Inserter splices image references into the focused note.
type Inserter struct {
	AutoInsert bool
	Surface    editor.Surface
	Notifier   notify.Notifier
	Logger     *slog.Logger

	// Clipboard, when set, also receives the reference after a capture.
	Clipboard func(string) error
}

// ImageLink renders a single-line markdown image reference to rel.
func ImageLink(rel string) string {
	if strings.ContainsAny(rel, " \t()") {
		return "![](<" + rel + ">)"
	}
	return "![](" + rel + ")"
}

func (in *Inserter) Insert(ctx context.Context, rel string) Result {
	link := ImageLink(rel)
	if in.Clipboard != nil {
		if err := in.Clipboard(link); err != nil {
			in.logger().Warn("failed to copy reference to clipboard", "error", err)
		} else {
			in.Notifier.Notify(notify.Info, "Image reference copied to clipboard")
		}
	}

	if !in.AutoInsert {
		return Result{Outcome: OutcomeDisabled}
	}

	doc, err := in.Surface.Active(ctx)
	if errors.Is(err, editor.ErrNoActiveDocument) {
		in.logger().Debug("no active document", "error", err)
		in.Notifier.Notify(notify.Warning, "No active note found to insert image")
		return Result{Outcome: OutcomeNoDocument}
	}
	if err != nil {
		in.logger().Error("failed to find active document", "error", err)
		in.Notifier.Notify(notify.Warning, "Screenshot saved but failed to insert into note")
		return Result{Outcome: OutcomeFailed}
	}

	cursor := doc.Cursor()
	if err := doc.Insert(link+"\n", cursor); err != nil {
		in.logger().Error("failed to insert image into note", "note", doc.Path(), "error", err)
		in.Notifier.Notify(notify.Warning, "Screenshot saved but failed to insert into note")
		return Result{Outcome: OutcomeFailed, NotePath: doc.Path()}
	}

	// Next line, so consecutive captures stack instead of overwriting.
	if err := doc.SetCursor(models.Position{Line: cursor.Line + 1, Ch: 0}); err != nil {
		in.logger().Error("failed to move cursor", "note", doc.Path(), "error", err)
		in.Notifier.Notify(notify.Warning, "Screenshot saved but failed to insert into note")
		return Result{Outcome: OutcomeFailed, NotePath: doc.Path()}
	}

	in.Notifier.Notify(notify.Success, "Image inserted into note")
	return Result{Outcome: OutcomeInserted, NotePath: doc.Path()}
}

func (in *Inserter) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.Default()
	}
	return in.Logger
}
