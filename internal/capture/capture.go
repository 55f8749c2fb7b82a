package capture

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"vaultshot/internal/note"
	"vaultshot/internal/notify"
	"vaultshot/internal/settings"
	"vaultshot/pkg/models"
	"vaultshot/pkg/screencapture"
)

const (
	MsgCancelled     = "Screenshot cancelled or failed"
	MsgUserCancelled = "Screenshot cancelled by user"
	MsgPermission    = `Permission denied. Enable "Screen Recording" for your terminal in System Settings → Privacy & Security`
)

// Store is the document store view used to place and verify captures.
type Store interface {
	Exists(rel string) (bool, error)
	CreateFolder(rel string) error
	AbsPath(rel string) (string, error)
}

type Inserter interface {
	Insert(ctx context.Context, rel string) note.Result
}

// History records every capture attempt.
type History interface {
	Save(c *models.Capture) error
}

// Service runs one capture end to end. The zero values of Now, NewID,
// History and Logger are usable.
type Service struct {
	Settings models.Settings
	Store    Store
	Runner   screencapture.Runner
	Inserter Inserter
	Notifier notify.Notifier
	History  History
	Logger   *slog.Logger

	Now   func() time.Time
	NewID func() string
}

// Filename returns the vault-relative output path for a capture taken at t.
// Without timestamps every capture targets the same file and overwrites it.
func Filename(s models.Settings, t time.Time) string {
	name := "screenshot." + string(s.Format)
	if s.IncludeTimestamp {
		name = "screenshot-" + Timestamp(t) + "." + string(s.Format)
	}
	return path.Join(s.OutputFolder, name)
}

var timestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// Timestamp is a sortable UTC timestamp safe for use in file names,
// e.g. 2024-03-05T14-07-09-123Z.
func Timestamp(t time.Time) string {
	return timestampReplacer.Replace(t.UTC().Format("2006-01-02T15:04:05.000Z"))
}

// Take captures a screenshot in mode. It never returns an error: every
// failure is reported through the notifier and reflected in the result.
func (s *Service) Take(ctx context.Context, mode screencapture.Mode) models.Capture {
	now := s.now()
	c := models.Capture{
		UUID:       s.newID(),
		Mode:       mode.String(),
		CapturedAt: now,
	}
	log := s.logger().With("capture", c.UUID, "mode", c.Mode)

	if !mode.Valid() {
		return s.finish(log, c, models.StatusFailed, notify.Error, fmt.Sprintf("Screenshot failed: %v", screencapture.ErrUnknownMode))
	}

	s.Notifier.Notify(notify.Info, mode.Prompt())

	c.FilePath = Filename(s.Settings, now)

	if err := s.ensureFolder(s.Settings.OutputFolder); err != nil {
		return s.fail(log, c, err)
	}

	target, err := s.Store.AbsPath(c.FilePath)
	if err != nil {
		return s.fail(log, c, err)
	}

	cmd, err := screencapture.Build(mode, target)
	if err != nil {
		return s.fail(log, c, err)
	}

	if err := s.Runner.Run(ctx, cmd); err != nil {
		return s.fail(log, c, err)
	}

	// The tool exits cleanly when the user presses Escape, so the file
	// itself is the only reliable success signal.
	exists, err := s.Store.Exists(c.FilePath)
	if err != nil {
		return s.fail(log, c, err)
	}
	if !exists {
		return s.finish(log, c, models.StatusCancelled, notify.Error, MsgCancelled)
	}

	c.Status = models.StatusSaved
	c.Message = "Screenshot saved: " + c.FilePath
	s.Notifier.Notify(notify.Success, c.Message)

	if s.Inserter != nil {
		res := s.Inserter.Insert(ctx, c.FilePath)
		c.Inserted = res.Outcome == note.OutcomeInserted
		c.NotePath = res.NotePath
		log.Debug("insertion finished", "outcome", res.Outcome.String(), "note", res.NotePath)
	}

	s.record(log, &c)
	return c
}

// ToClipboard runs an interactive area capture straight to the system
// clipboard. Nothing is written to the vault.
func (s *Service) ToClipboard(ctx context.Context) error {
	s.Notifier.Notify(notify.Info, "Taking screenshot to clipboard...")
	if err := s.Runner.Run(ctx, screencapture.Clipboard()); err != nil {
		s.logger().Error("clipboard capture failed", "error", err)
		s.Notifier.Notify(notify.Error, "Failed to take screenshot to clipboard")
		return err
	}
	s.Notifier.Notify(notify.Success, "Screenshot copied to clipboard")
	return nil
}

func (s *Service) ensureFolder(rel string) error {
	if rel == settings.RootFolder {
		return nil
	}
	exists, err := s.Store.Exists(rel)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.Store.CreateFolder(rel)
}

func (s *Service) fail(log *slog.Logger, c models.Capture, err error) models.Capture {
	f := screencapture.Classify(err)
	log.Error("screenshot failed", "kind", f.Kind.String(), "error", err)

	switch f.Kind {
	case screencapture.FailurePermission:
		return s.finish(log, c, models.StatusPermissionDenied, notify.Error, MsgPermission)
	case screencapture.FailureCancelled:
		return s.finish(log, c, models.StatusCancelled, notify.Info, MsgUserCancelled)
	default:
		return s.finish(log, c, models.StatusFailed, notify.Error, "Screenshot failed: "+f.Message)
	}
}

func (s *Service) finish(log *slog.Logger, c models.Capture, st models.Status, level notify.Level, msg string) models.Capture {
	c.Status = st
	c.Message = msg
	s.Notifier.Notify(level, msg)
	s.record(log, &c)
	return c
}

func (s *Service) record(log *slog.Logger, c *models.Capture) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(c); err != nil {
		log.Warn("failed to record capture", "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
