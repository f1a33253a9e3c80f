package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/bayframe/pkg/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	srv := config.LoadServer()
	code, err := config.LoadCodeRequirements(srv.CodeFile)
	if err != nil {
		log.Fatalf("[DESKTOP] %v", err)
	}

	app := NewApp(code)

	err = wails.Run(&options.App{
		Title:  "bayframe",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatalf("[DESKTOP] %v", err)
	}
}
