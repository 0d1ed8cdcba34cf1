package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/focustense/penpals-server/internal/command"
	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/database"
	"github.com/focustense/penpals-server/internal/gifting"
	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/server"
	"github.com/focustense/penpals-server/internal/sim"
	"github.com/focustense/penpals-server/internal/worlddate"
)

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "config.yaml", "Path to server config YAML file")
	year := flag.Int("year", 1, "Starting world year")
	season := flag.String("season", "spring", "Starting season (spring, summer, fall, winter)")
	day := flag.Int("day", 1, "Starting day of month (1-28)")
	noDB := flag.Bool("no-db", false, "Run without persistence (gift mail is lost on exit)")
	hashPassword := flag.String("hash-password", "", "Hash a console password and exit")
	flag.Parse()

	// Handle --hash-password flag (prints the hash and exits)
	if *hashPassword != "" {
		hash, err := server.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger first (before any logging)
	logger.Initialize(logger.Config{
		Level:          cfg.Logging.Level,
		ConsoleEnabled: cfg.Logging.ConsoleEnabled,
		ConsoleFormat:  cfg.Logging.ConsoleFormat,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		FileFormat:     cfg.Logging.FileFormat,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxBackups: cfg.Logging.FileMaxBackups,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})

	logger.Info("Starting PenPals gift-mail server")

	startSeason, ok := worlddate.ParseSeason(*season)
	if !ok {
		logger.Error("Unknown season", "season", *season)
		os.Exit(1)
	}
	startDate := worlddate.WorldDate{Year: *year, Season: startSeason, Day: *day}

	world, err := sim.LoadSimulation(startDate,
		filepath.Join(cfg.DataDir, "npcs.yaml"),
		filepath.Join(cfg.DataDir, "players.yaml"))
	if err != nil {
		logger.Error("Failed to load world fixtures", "error", err)
		os.Exit(1)
	}

	store := gifting.NewStore()
	var db *database.Database
	if !*noDB {
		db, err = database.Open(cfg.Database)
		if err != nil {
			logger.Error("Failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		store, err = db.LoadStore()
		if err != nil {
			logger.Error("Failed to load gift-mail store", "error", err)
			os.Exit(1)
		}
		logger.Info("Gift-mail store loaded", "players", len(store.PlayerGiftMail))
	}

	// Re-read the gifting section on each access so config edits apply
	// without a restart. Falls back to the last good snapshot on error.
	configPath := *configFile
	giftingCfg := cfg.Gifting
	provider := func() *config.GiftingConfig {
		if fresh, err := config.LoadConfig(configPath); err == nil {
			giftingCfg = fresh.Gifting
		}
		return &giftingCfg
	}

	engine := gifting.NewEngine(world, store, provider)
	executor := command.NewExecutor(world, engine, db)

	if cfg.Console.Addr == "" {
		logger.Error("Console address not configured; nothing to serve")
		os.Exit(1)
	}

	console := server.NewConsole(cfg.Console, executor)
	if err := console.Start(); err != nil {
		logger.Error("Console server failed", "error", err)
		os.Exit(1)
	}
}
