package main

import (
	"embed"
	"os"
	"path/filepath"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"github.com/porthole-app/porthole-desktop/internal/config"
	"github.com/porthole-app/porthole-desktop/internal/logging"
	"github.com/porthole-app/porthole-desktop/internal/settings"
	"github.com/porthole-app/porthole-desktop/internal/update"
)

//go:embed all:frontend/dist
var assets embed.FS

// appDirName is the per-user directory holding config.toml, settings.json
// and the log file.
const appDirName = "Porthole"

func main() {
	appDir := ""
	if base, err := os.UserConfigDir(); err == nil {
		appDir = filepath.Join(base, appDirName)
	}

	cfg := config.Load(appDir)
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Dir: appDir})

	store, err := settings.NewStore(appDirName)
	if err != nil {
		logger.Fatal().Err(err).Msg("settings store unavailable")
	}

	updater := update.NewService(&logger.Logger, cfg.Update.ManifestURL, Version,
		time.Duration(cfg.Update.TimeoutSeconds)*time.Second)

	app := NewApp(logger, store, updater)

	// Detect development mode
	isDev := os.Getenv("WAILS_DEV") != "" || Version == "0.1.0-dev"

	err = wails.Run(&options.App{
		Title:  "Porthole",
		Width:  1200,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 18, G: 24, B: 33, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			// Transparent titlebar overlaying the web content, so the UI
			// draws its own chrome under the traffic lights.
			TitleBar:             mac.TitleBarHiddenInset(),
			WebviewIsTransparent: true,
		},
		Debug: options.Debug{
			OpenInspectorOnStartup: isDev,
		},
	})

	if err != nil {
		logger.Error().Err(err).Msg("wails run failed")
	}
}
