package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"robotblocks/internal/config"
	"robotblocks/internal/service"
	"robotblocks/internal/storage"
	"robotblocks/internal/toolchain"
	"robotblocks/internal/watcher"
)

const settingsDBName = "robotblocks.db"

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg *config.Config

	db       *storage.DB
	settings *storage.SettingsStore
	session  *service.Session
	projects *service.ProjectService
	builds   *service.BuildService
	watch    *watcher.Watcher
}

// New opens the settings database and builds the services. The Wails
// context is attached later in Startup.
func New(cfg *config.Config) (*App, error) {
	db, err := storage.New(filepath.Join(cfg.DataDirectory(), settingsDBName))
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	a := &App{
		cfg:      cfg,
		db:       db,
		settings: storage.NewSettingsStore(db),
		session:  service.NewSession(),
	}
	cmds := cfg.Commands()
	runner := toolchain.NewRunner(cmds.Launcher, a.onToolchainOutput)
	a.projects = service.NewProjectService(a.session, wailsDialogs{app: a}, a.settings, a)
	a.builds = service.NewBuildService(a.session, runner, cmds.Pip)
	return a, nil
}

// WindowSize returns the window size saved by the previous session.
func (a *App) WindowSize() storage.WindowSize {
	return a.settings.WindowSize()
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	w, err := watcher.New(func(path string, content []byte) {
		a.projects.ExternalChange(ctx, path, content)
	})
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to create project watcher: %v", err)
	}
	a.watch = w

	go a.detectRobotPy()
}

// BeforeClose saves the window size. Closing is never prevented.
func (a *App) BeforeClose(ctx context.Context) bool {
	width, height := wailsRuntime.WindowGetSize(ctx)
	if err := a.settings.SaveWindowSize(width, height); err != nil {
		slog.Warn("save window size", "err", err)
	}
	return false
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	waitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.builds.Wait(waitCtx)

	if a.watch != nil {
		a.watch.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Emit implements service.EventEmitter over the Wails event bus.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

func (a *App) onToolchainOutput(data []byte) {
	if a.ctx == nil {
		return
	}
	a.Emit(a.ctx, service.EventToolchainOutput, string(data))
}

// detectRobotPy runs once at startup. Its outcome only gates Deploy and
// Simulate, so failures become warnings.
func (a *App) detectRobotPy() {
	err := a.builds.Detect(a.ctx)
	if err == nil {
		return
	}
	slog.Warn("robotpy detection", "err", err)
	a.warn(detectionMessage(err))
}

// watchProject follows the tracked project file for external edits.
func (a *App) watchProject() {
	if a.watch == nil {
		return
	}
	if err := a.watch.Watch(a.session.ProjectPath()); err != nil {
		slog.Warn("watch project", "err", err)
	}
}
