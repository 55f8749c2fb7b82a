package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vaultshot/internal/db"
	"vaultshot/internal/editor"
	"vaultshot/internal/note"
	"vaultshot/internal/notify"
	"vaultshot/internal/settings"
	"vaultshot/internal/vault"
	"vaultshot/pkg/models"
	"vaultshot/pkg/screencapture"
)

type fakeStore struct {
	files   map[string]bool
	creates []string
	events  *[]string
}

func newFakeStore(events *[]string, existing ...string) *fakeStore {
	s := &fakeStore{files: map[string]bool{}, events: events}
	for _, e := range existing {
		s.files[e] = true
	}
	return s
}

func (s *fakeStore) Exists(rel string) (bool, error) { return s.files[rel], nil }

func (s *fakeStore) CreateFolder(rel string) error {
	s.creates = append(s.creates, rel)
	*s.events = append(*s.events, "mkdir "+rel)
	s.files[rel] = true
	return nil
}

func (s *fakeStore) AbsPath(rel string) (string, error) {
	return "/Users/me/My Vault/" + rel, nil
}

type fakeRunner struct {
	cmds   []screencapture.Command
	err    error
	create func()
	events *[]string
}

func (r *fakeRunner) Run(_ context.Context, c screencapture.Command) error {
	r.cmds = append(r.cmds, c)
	*r.events = append(*r.events, "run")
	if r.create != nil {
		r.create()
	}
	return r.err
}

type fakeInserter struct {
	calls []string
	res   note.Result
}

func (f *fakeInserter) Insert(_ context.Context, rel string) note.Result {
	f.calls = append(f.calls, rel)
	return f.res
}

type memHistory struct{ saved []models.Capture }

func (h *memHistory) Save(c *models.Capture) error {
	c.ID = int64(len(h.saved) + 1)
	h.saved = append(h.saved, *c)
	return nil
}

var fixedTime = time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.UTC)

type harness struct {
	svc      *Service
	store    *fakeStore
	runner   *fakeRunner
	inserter *fakeInserter
	notes    *notify.Recorder
	history  *memHistory
	events   []string
}

func newHarness(settings models.Settings, existing ...string) *harness {
	h := &harness{}
	h.store = newFakeStore(&h.events, existing...)
	h.runner = &fakeRunner{events: &h.events}
	h.inserter = &fakeInserter{res: note.Result{Outcome: note.OutcomeInserted, NotePath: "today.md"}}
	h.notes = &notify.Recorder{}
	h.history = &memHistory{}
	h.svc = &Service{
		Settings: settings,
		Store:    h.store,
		Runner:   h.runner,
		Inserter: h.inserter,
		Notifier: h.notes,
		History:  h.history,
		Now:      func() time.Time { return fixedTime },
		NewID:    func() string { return "id-1" },
	}
	return h
}

func TestTimestampAndFilename(t *testing.T) {
	assert.Equal(t, "2024-03-05T14-07-09-123Z", Timestamp(fixedTime))

	s := models.DefaultSettings()
	assert.Equal(t, "screenshots/screenshot-2024-03-05T14-07-09-123Z.png", Filename(s, fixedTime))

	s.IncludeTimestamp = false
	s.Format = models.FormatJPG
	assert.Equal(t, "screenshots/screenshot.jpg", Filename(s, fixedTime))
	assert.Equal(t, Filename(s, fixedTime), Filename(s, fixedTime.Add(time.Hour)))
}

func TestTimestampedNamesDifferWithinMinute(t *testing.T) {
	s := models.DefaultSettings()
	a := Filename(s, time.Date(2024, 1, 1, 10, 30, 5, 0, time.UTC))
	b := Filename(s, time.Date(2024, 1, 1, 10, 30, 6, 0, time.UTC))
	assert.NotEqual(t, a, b)
}

func TestTimestampUsesUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-03-05T14-07-09-123Z", Timestamp(fixedTime.In(loc)))
}

func TestTakeSuccess(t *testing.T) {
	h := newHarness(models.DefaultSettings())
	want := "screenshots/screenshot-2024-03-05T14-07-09-123Z.png"
	h.runner.create = func() { h.store.files[want] = true }

	c := h.svc.Take(context.Background(), screencapture.ModeWindow)

	assert.Equal(t, models.StatusSaved, c.Status)
	assert.Equal(t, want, c.FilePath)
	assert.True(t, c.Inserted)
	assert.Equal(t, "today.md", c.NotePath)
	assert.Equal(t, "id-1", c.UUID)
	assert.Equal(t, "window", c.Mode)

	require.Len(t, h.runner.cmds, 1)
	assert.Equal(t, []string{"-i", "-w", "/Users/me/My Vault/" + want}, h.runner.cmds[0].Args)
	assert.Equal(t, []string{want}, h.inserter.calls)
	assert.Equal(t, []string{"Click on a window to capture it...", "Screenshot saved: " + want}, h.notes.Texts())

	require.Len(t, h.history.saved, 1)
	assert.Equal(t, models.StatusSaved, h.history.saved[0].Status)
}

func TestTakeCreatesFolderOnceBeforeRunning(t *testing.T) {
	h := newHarness(models.DefaultSettings())
	h.svc.Take(context.Background(), screencapture.ModeArea)

	assert.Equal(t, []string{"screenshots"}, h.store.creates)
	assert.Equal(t, []string{"mkdir screenshots", "run"}, h.events)
}

func TestTakeSkipsCreateWhenFolderExists(t *testing.T) {
	h := newHarness(models.DefaultSettings(), "screenshots")
	h.svc.Take(context.Background(), screencapture.ModeFullscreen)

	assert.Empty(t, h.store.creates)
	assert.Equal(t, []string{"run"}, h.events)
	assert.Equal(t, []string{"-T", "1"}, h.runner.cmds[0].Args[:2])
}

func TestTakeMissingFileIsCancellation(t *testing.T) {
	h := newHarness(models.DefaultSettings(), "screenshots")

	c := h.svc.Take(context.Background(), screencapture.ModeArea)

	assert.Equal(t, models.StatusCancelled, c.Status)
	assert.Empty(t, h.inserter.calls)
	assert.Equal(t, notify.Message{Level: notify.Error, Text: MsgCancelled}, h.notes.Last())
	for _, m := range h.notes.Texts() {
		assert.NotContains(t, m, "saved")
	}
}

func TestTakeProcessErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status models.Status
		msg    string
	}{
		{"permission", errors.New("screencapture: Operation not permitted"), models.StatusPermissionDenied, MsgPermission},
		{"killed", errors.New("Command failed: signal: killed"), models.StatusCancelled, MsgUserCancelled},
		{"cancelled context", context.Canceled, models.StatusCancelled, MsgUserCancelled},
		{"other", errors.New("boom"), models.StatusFailed, "Screenshot failed: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(models.DefaultSettings(), "screenshots")
			h.runner.err = tc.err

			c := h.svc.Take(context.Background(), screencapture.ModeWindow)

			assert.Equal(t, tc.status, c.Status)
			assert.Equal(t, tc.msg, c.Message)
			assert.Equal(t, tc.msg, h.notes.Last().Text)
			assert.Empty(t, h.inserter.calls)
			require.Len(t, h.history.saved, 1)
		})
	}
}

func TestTakeFailureWithMarkerWordInVaultPath(t *testing.T) {
	h := newHarness(models.DefaultSettings(), "screenshots")
	h.runner.err = &screencapture.ProcessError{
		Command: `screencapture -i "/Users/me/Killed Projects/screenshots/screenshot.png"`,
		Err:     errors.New("exit status 1"),
	}

	c := h.svc.Take(context.Background(), screencapture.ModeArea)

	assert.Equal(t, models.StatusFailed, c.Status)
	assert.Equal(t, "Screenshot failed: "+h.runner.err.Error(), c.Message)
}

func TestTakeIntoVaultRoot(t *testing.T) {
	v, err := vault.Open(t.TempDir())
	require.NoError(t, err)

	s := models.DefaultSettings()
	require.NoError(t, settings.Set(&s, "folder", "."))

	rec := &notify.Recorder{}
	svc := &Service{
		Settings: s,
		Store:    v,
		Runner:   writingRunner{},
		Inserter: &note.Inserter{AutoInsert: false, Notifier: rec},
		Notifier: rec,
		Now:      func() time.Time { return fixedTime },
	}

	c := svc.Take(context.Background(), screencapture.ModeArea)
	require.Equal(t, models.StatusSaved, c.Status, c.Message)
	assert.Equal(t, "screenshot-2024-03-05T14-07-09-123Z.png", c.FilePath)
	assert.FileExists(t, filepath.Join(v.Root, c.FilePath))
}

func TestTakeUnknownModeRunsNothing(t *testing.T) {
	h := newHarness(models.DefaultSettings())
	c := h.svc.Take(context.Background(), screencapture.Mode(0))

	assert.Equal(t, models.StatusFailed, c.Status)
	assert.Empty(t, h.runner.cmds)
	assert.Empty(t, h.store.creates)
}

func TestTakeWithoutTimestampOverwrites(t *testing.T) {
	s := models.DefaultSettings()
	s.IncludeTimestamp = false
	h := newHarness(s, "screenshots")
	h.runner.create = func() { h.store.files["screenshots/screenshot.png"] = true }

	first := h.svc.Take(context.Background(), screencapture.ModeFullscreenImmediate)
	second := h.svc.Take(context.Background(), screencapture.ModeFullscreenImmediate)

	assert.Equal(t, models.StatusSaved, second.Status)
	assert.Equal(t, first.FilePath, second.FilePath)
	assert.Equal(t, []string{"/Users/me/My Vault/screenshots/screenshot.png"}, h.runner.cmds[1].Args)
}

func TestToClipboard(t *testing.T) {
	h := newHarness(models.DefaultSettings())
	require.NoError(t, h.svc.ToClipboard(context.Background()))
	assert.Equal(t, []string{"-i", "-c"}, h.runner.cmds[0].Args)
	assert.Equal(t, "Screenshot copied to clipboard", h.notes.Last().Text)

	h.runner.err = errors.New("nope")
	assert.Error(t, h.svc.ToClipboard(context.Background()))
	assert.Equal(t, "Failed to take screenshot to clipboard", h.notes.Last().Text)
}

type memState struct {
	path   string
	cursor models.Position
}

func (m *memState) ActiveNote() (string, models.Position, error) {
	if m.path == "" {
		return "", models.Position{}, db.ErrNoActiveNote
	}
	return m.path, m.cursor, nil
}

func (m *memState) SetCursor(pos models.Position) error {
	m.cursor = pos
	return nil
}

// writingRunner stands in for screencapture by writing the target file.
type writingRunner struct{}

func (writingRunner) Run(_ context.Context, c screencapture.Command) error {
	return os.WriteFile(c.Args[len(c.Args)-1], []byte("png"), 0644)
}

func TestTakeEndToEndInsertsIntoNote(t *testing.T) {
	v, err := vault.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(v.Root, "today.md"), []byte("first\nsecond\n"), 0644))

	state := &memState{path: "today.md", cursor: models.Position{Line: 1}}
	rec := &notify.Recorder{}
	svc := &Service{
		Settings: models.DefaultSettings(),
		Store:    v,
		Runner:   writingRunner{},
		Inserter: &note.Inserter{AutoInsert: true, Surface: &editor.FileSurface{State: state, Files: v}, Notifier: rec},
		Notifier: rec,
		Now:      func() time.Time { return fixedTime },
	}

	c := svc.Take(context.Background(), screencapture.ModeArea)
	require.Equal(t, models.StatusSaved, c.Status)
	assert.True(t, c.Inserted)

	data, err := v.ReadFile("today.md")
	require.NoError(t, err)
	assert.Equal(t, "first\n![](screenshots/screenshot-2024-03-05T14-07-09-123Z.png)\nsecond\n", string(data))
	assert.Equal(t, models.Position{Line: 2, Ch: 0}, state.cursor)
	assert.Equal(t, "Image inserted into note", rec.Last().Text)
}

func TestTakeEndToEndNoActiveNote(t *testing.T) {
	v, err := vault.Open(t.TempDir())
	require.NoError(t, err)

	rec := &notify.Recorder{}
	svc := &Service{
		Settings: models.DefaultSettings(),
		Store:    v,
		Runner:   writingRunner{},
		Inserter: &note.Inserter{AutoInsert: true, Surface: &editor.FileSurface{State: &memState{}, Files: v}, Notifier: rec},
		Notifier: rec,
	}

	c := svc.Take(context.Background(), screencapture.ModeWindow)
	assert.Equal(t, models.StatusSaved, c.Status)
	assert.False(t, c.Inserted)
	assert.Equal(t, "No active note found to insert image", rec.Last().Text)
	assert.NotContains(t, rec.Texts(), MsgCancelled)
}
