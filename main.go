package main

import (
	"embed"
	"log/slog"
	"os"
	"slices"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	robotApp "robotblocks/internal/app"
	"robotblocks/internal/config"
	"robotblocks/internal/logs"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
	if err := logs.SetLevel(cfg.LogLevel()); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
	logger, closer, err := logs.New(os.Stderr, cfg.DataDirectory())
	if err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	// Headless mode: stdio belongs to the MCP protocol.
	if slices.Contains(os.Args[1:], "--mcp") {
		if err := robotApp.ServeMCP(cfg); err != nil {
			slog.Error("mcp server stopped", "err", err)
		}
		return
	}

	app, err := robotApp.New(cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		return
	}
	size := app.WindowSize()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "RobotBlocks",
		Width:     size.Width,
		Height:    size.Height,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 250, G: 250, B: 250, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnBeforeClose:    app.BeforeClose,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   "RobotBlocks",
				Message: "Block-based robot programming for RobotPy",
			},
		},
	})

	if err != nil {
		slog.Error("wails run", "err", err)
	}
}
