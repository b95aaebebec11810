package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"raceline-editor/internal/config"
	"raceline-editor/internal/log"
	"raceline-editor/internal/persist"
	"raceline-editor/internal/persist/nativedialog"
	"raceline-editor/internal/raceline"
	"raceline-editor/internal/session"
	"raceline-editor/internal/ui"
)

func main() {
	var (
		osmPath    = flag.String("osm", "", "Lanelet2 OSM (or GeoJSON) road network")
		csvPath    = flag.String("csv", "", "racing line CSV with x and y columns")
		configPath = flag.String("config", "", "optional YAML config file")
		noGUI      = flag.Bool("nogui", false, "only parse files and exit")
		outPath    = flag.String("out", "", "with -nogui, re-export the loaded racing line here")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = c
	}
	if *osmPath != "" {
		cfg.Files.OSM = *osmPath
	}
	if *csvPath != "" {
		cfg.Files.CSV = *csvPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.New(level)
	defer logger.Sync()

	ctx := context.Background()
	if *noGUI {
		if err := runHeadless(ctx, cfg, *outPath); err != nil {
			logger.Error("headless run failed", log.Err(err))
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	if err := runEditor(ctx, cfg, logger); err != nil {
		logger.Error("editor failed", log.Err(err))
		logger.Sync()
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg config.Config, outPath string) error {
	report, err := session.LoadAndReport(ctx, cfg.Files.OSM, cfg.Files.CSV)
	if err != nil {
		return err
	}
	fmt.Println(report)

	if outPath == "" {
		return nil
	}
	table, err := raceline.Load(cfg.Files.CSV)
	if err != nil {
		return err
	}
	return persist.WriteFile(outPath, table)
}

func runEditor(ctx context.Context, cfg config.Config, logger log.Log) error {
	sess, err := session.Open(ctx, session.Options{
		OSMPath:   cfg.Files.OSM,
		CSVPath:   cfg.Files.CSV,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		HitRadius: cfg.Input.HitRadius,
		Picker: nativedialog.Dialog{
			Title:    "Save racing line",
			StartDir: filepath.Dir(cfg.Files.CSV),
		},
		DefaultName: cfg.Files.DefaultSaveName,
	}, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(ui.New(sess, cfg.Render, logger))
}
