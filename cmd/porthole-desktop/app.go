package main

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/porthole-app/porthole-desktop/internal/logging"
	"github.com/porthole-app/porthole-desktop/internal/notify"
	"github.com/porthole-app/porthole-desktop/internal/platform"
	"github.com/porthole-app/porthole-desktop/internal/settings"
	"github.com/porthole-app/porthole-desktop/internal/update"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// App is the native backend bound into the webview. Every exported method is
// callable from the frontend; results and errors are serialized back to it.
type App struct {
	ctx      context.Context
	logger   *logging.Logger
	settings *settings.Store
	updater  *update.Service
}

// NewApp creates the App with its capability providers.
func NewApp(logger *logging.Logger, store *settings.Store, updater *update.Service) *App {
	return &App{
		logger:   logger,
		settings: store,
		updater:  updater,
	}
}

// startup is called when the app starts. The context is saved so the
// runtime methods (dialogs, quit) can be called later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.logger.Info().Str("version", Version).Str("os", platform.OSName()).Msg("app started")
}

// shutdown is called when the app is closing.
func (a *App) shutdown(_ context.Context) {
	a.logger.Info().Msg("app shutting down")
	a.logger.Close()
}

// GetOS returns the host OS as "macos", "windows", "linux" or "unknown".
func (a *App) GetOS() string {
	return platform.OSName()
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// OpenLink opens a URL with the OS default handler.
func (a *App) OpenLink(url string) error {
	return platform.OpenURL(url)
}

// Restart relaunches the application. On success a replacement process is
// already running and this one quits, so the call never returns to the
// frontend. On failure the app keeps running and the error is surfaced.
func (a *App) Restart() error {
	if err := platform.Relaunch(); err != nil {
		a.logger.Error().Err(err).Msg("restart failed")
		return err
	}
	wailsRuntime.Quit(a.ctx)
	return nil
}

// Notify shows a system notification. body may be empty.
func (a *App) Notify(title, body string) error {
	return notify.Send(title, body)
}

// OpenDirectoryPicker shows the native folder chooser and returns the
// selected paths. Cancelling is not an error; it yields an empty list.
// Wails has no multi-directory dialog, so multiple selection degrades to a
// single choice.
func (a *App) OpenDirectoryPicker(title string, multiple bool) ([]string, error) {
	dir, err := wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: title,
	})
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return []string{}, nil
	}
	return []string{dir}, nil
}

// OpenFilePicker shows the native file chooser and returns the selected
// paths. Cancelling yields an empty list, not an error.
func (a *App) OpenFilePicker(title string, multiple bool) ([]string, error) {
	opts := wailsRuntime.OpenDialogOptions{Title: title}

	if multiple {
		files, err := wailsRuntime.OpenMultipleFilesDialog(a.ctx, opts)
		if err != nil {
			return nil, err
		}
		if files == nil {
			files = []string{}
		}
		return files, nil
	}

	file, err := wailsRuntime.OpenFileDialog(a.ctx, opts)
	if err != nil {
		return nil, err
	}
	if file == "" {
		return []string{}, nil
	}
	return []string{file}, nil
}

// SaveFilePicker shows the native save dialog and returns the chosen path,
// or "" when the user cancels.
func (a *App) SaveFilePicker(title, defaultName string) (string, error) {
	return wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           title,
		DefaultFilename: defaultName,
	})
}

// CheckUpdate queries the release manifest and reports whether a newer
// build is available.
func (a *App) CheckUpdate() (update.Info, error) {
	return a.updater.Check(a.ctx)
}

// InstallUpdate re-checks for an update and, if one is pending, downloads
// and applies it. Download progress is not surfaced to the frontend.
func (a *App) InstallUpdate() error {
	return a.updater.Install(a.ctx, nil)
}

// GetDefaultServerURL returns the persisted default server URL, or "" when
// none is set. An unset value is not an error.
func (a *App) GetDefaultServerURL() (string, error) {
	url, _, err := a.settings.Get(settings.DefaultServerKey)
	return url, err
}

// SetDefaultServerURL persists url as the default server. An empty url
// clears the setting.
func (a *App) SetDefaultServerURL(url string) error {
	if url == "" {
		return a.settings.Delete(settings.DefaultServerKey)
	}
	return a.settings.Set(settings.DefaultServerKey, url)
}
