package app

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// wailsDialogs implements service.Dialogs with native pickers. Dialogs are
// parented to the app's window context rather than the binding's.
type wailsDialogs struct {
	app *App
}

func (d wailsDialogs) ChooseProjectFile(_ context.Context, defaultDir string) (string, error) {
	return wailsRuntime.OpenFileDialog(d.app.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Open Project",
		DefaultDirectory: defaultDir,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Blockly project (*.json)", Pattern: "*.json"},
		},
	})
}

func (d wailsDialogs) ChooseDirectory(_ context.Context, defaultDir string) (string, error) {
	return wailsRuntime.OpenDirectoryDialog(d.app.ctx, wailsRuntime.OpenDialogOptions{
		Title:                "Choose Project Directory",
		DefaultDirectory:     defaultDir,
		CanCreateDirectories: true,
	})
}

// showError opens a modal error box.
func (a *App) showError(title, message string) {
	wailsRuntime.LogErrorf(a.ctx, "%s: %s", title, message)
	_, _ = wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:    wailsRuntime.ErrorDialog,
		Title:   title,
		Message: message,
	})
}

// warn opens a modal warning box.
func (a *App) warn(message string) {
	wailsRuntime.LogWarningf(a.ctx, "%s", message)
	_, _ = wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:    wailsRuntime.WarningDialog,
		Title:   "Warning",
		Message: message,
	})
}
