package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"vaultshot/internal/capture"
	"vaultshot/internal/db"
	"vaultshot/internal/editor"
	"vaultshot/internal/logging"
	"vaultshot/internal/note"
	"vaultshot/internal/notify"
	"vaultshot/internal/settings"
	"vaultshot/internal/vault"
	"vaultshot/pkg/models"
	"vaultshot/pkg/screencapture"
)

var (
	stdout io.Writer = os.Stdout

	newRunner = func(logger *slog.Logger) screencapture.Runner {
		return screencapture.ExecRunner{Logger: logger}
	}
)

// app bundles everything a command needs for one vault.
type app struct {
	vault        *vault.Vault
	store        *db.Store
	settings     models.Settings
	settingsPath string
	logger       *slog.Logger
	notifier     notify.Notifier
}

func resolveVaultDir() (string, error) {
	if vaultDir != "" {
		return vaultDir, nil
	}
	if env := os.Getenv("VAULTSHOT_VAULT"); env != "" {
		return env, nil
	}
	return os.Getwd()
}

func openApp() (*app, error) {
	logger, err := logging.New(logging.Options{Level: logLevel, Format: logFormat})
	if err != nil {
		return nil, err
	}

	dir, err := resolveVaultDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving vault: %w", err)
	}
	v, err := vault.Open(dir)
	if err != nil {
		return nil, err
	}

	settingsPath := settings.PathFor(v.Root)
	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, err
	}

	store, err := db.New(filepath.Join(v.Root, settings.DirName, db.FileName))
	if err != nil {
		return nil, fmt.Errorf("error initializing DB: %w", err)
	}

	var n notify.Notifier = notify.NewTerminal(os.Stderr)
	if desktopNotify {
		n = notify.Multi{n, notify.Desktop{Title: "vaultshot"}}
	}

	return &app{
		vault:        v,
		store:        store,
		settings:     s,
		settingsPath: settingsPath,
		logger:       logger.With("vault", v.Root),
		notifier:     n,
	}, nil
}

func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

func (a *app) Close() error {
	return a.store.Close()
}

// exit closes the store before terminating, since os.Exit skips deferred calls.
func (a *app) exit(code int) {
	a.Close()
	os.Exit(code)
}

func (a *app) surface() *editor.FileSurface {
	return &editor.FileSurface{State: a.store, Files: a.vault}
}

func (a *app) service(copyLink bool) *capture.Service {
	in := &note.Inserter{
		AutoInsert: a.settings.AutoInsert,
		Surface:    a.surface(),
		Notifier:   a.notifier,
		Logger:     a.logger,
	}
	if copyLink {
		in.Clipboard = clipboard.WriteAll
	}
	return &capture.Service{
		Settings: a.settings,
		Store:    a.vault,
		Runner:   newRunner(a.logger),
		Inserter: in,
		Notifier: a.notifier,
		History:  a.store,
		Logger:   a.logger,
	}
}
