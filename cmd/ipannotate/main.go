package main

import (
	"context"
	"flag"
	"os"

	"ipannotate/internal/config"
	"ipannotate/internal/geo"
	"ipannotate/internal/handler"
	"ipannotate/internal/service"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	dataFile := flag.String("file", "", "Annotation file loaded at startup and used as the save/load default")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	initConfig := flag.Bool("init-config", false, "Write a default config file (to -config or the user config dir) and exit")
	flag.Parse()

	if *initConfig {
		return writeDefaultConfig(*configPath)
	}

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		log.Error("Failed to load config", "path", cfgPath, "error", err)
		return 1
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := newLogger(cfg.Log)
	if cfgPath != "" {
		logger.Info("Config loaded", "path", cfgPath)
	}
	logger.Debug(cfg.Summary())

	ctx := context.Background()

	svc := service.NewAnnotationService(logger)

	// A missing data file is the normal first run
	if err := svc.Load(ctx, cfg.DataFile); err != nil {
		logger.Error("Failed to load annotations, starting empty", "path", cfg.DataFile, "error", err)
	} else {
		logger.Info("Annotations loaded", "path", cfg.DataFile, "count", svc.Len())
	}

	menu := handler.NewMenuHandler(svc, os.Stdin, os.Stdout, cfg.DataFile)

	if cfg.GeoIP.Enabled() {
		resolver, err := geo.Open(cfg.GeoIP.CityDB, cfg.GeoIP.ASNDB)
		if err != nil {
			logger.Warn("GeoIP suggestions disabled", "error", err)
		} else {
			defer resolver.Close()
			menu.SetSuggester(resolver)
			logger.Info("GeoIP suggestions enabled", "city", cfg.GeoIP.CityDB, "asn", cfg.GeoIP.ASNDB)
		}
	}

	if err := menu.Run(ctx); err != nil {
		logger.Error("Reading input failed", "error", err)
		return 1
	}
	return 0
}

// writeDefaultConfig creates a starter config file. An existing file is
// left alone.
func writeDefaultConfig(path string) int {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		log.Error("Config file already exists", "path", path)
		return 1
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		log.Error("Failed to write config", "path", path, "error", err)
		return 1
	}
	log.Info("Config written", "path", path)
	return 0
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// newLogger writes diagnostics to stderr so they stay apart from the menu
func newLogger(cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: cfg.Timestamp,
		Prefix:          "ipannotate",
	})
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", cfg.Level)
	}
	return logger
}
