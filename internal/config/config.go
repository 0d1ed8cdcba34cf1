// Package config loads server-wide configuration from a single YAML file.
// The gifting section is hot-reloadable: callers re-read it through a
// provider function between sweeps rather than caching it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/focustense/penpals-server/internal/worlddate"
)

// GiftTasteVisibility controls when gift tastes appear in previews.
type GiftTasteVisibility string

const (
	// TasteVisibilityKnown shows a taste only if the player has learned it.
	TasteVisibilityKnown GiftTasteVisibility = "known"
	// TasteVisibilityAll always shows tastes.
	TasteVisibilityAll GiftTasteVisibility = "all"
	// TasteVisibilityNone never shows tastes.
	TasteVisibilityNone GiftTasteVisibility = "none"
)

// GiftingConfig holds the gift-mail rule options.
type GiftingConfig struct {
	// Scheduling selects same-day (end of day) or next-day (start of next
	// day) delivery.
	Scheduling worlddate.Scheduling `yaml:"scheduling"`

	// FriendshipMultiplier scales friendship gains from mailed gifts.
	// Applies to gains only; disliked gifts incur the full penalty.
	// Valid range 0.05-1.0.
	FriendshipMultiplier float64 `yaml:"friendship_multiplier"`

	// QuestFriendshipMultiplier scales the friendship awarded for
	// completing a delivery quest by mail.
	QuestFriendshipMultiplier float64 `yaml:"quest_friendship_multiplier"`

	// RequireConfirmation asks for confirmation before scheduling,
	// including replacements of an already-scheduled gift.
	RequireConfirmation bool `yaml:"require_confirmation"`

	// RequireQuestCompletion gates gift mailing behind the "Making
	// Friends" introduction quest.
	RequireQuestCompletion bool `yaml:"require_quest_completion"`

	// GiftTasteVisibility controls taste display in previews.
	GiftTasteVisibility GiftTasteVisibility `yaml:"gift_taste_visibility"`

	// DetailedReturnReasons includes the concrete reason in return mail.
	DetailedReturnReasons bool `yaml:"detailed_return_reasons"`

	// EnableQuests allows parcels to be linked to delivery quests.
	EnableQuests bool `yaml:"enable_quests"`

	// RulesPath is the editable custom-rules asset, re-read on every
	// evaluation.
	RulesPath string `yaml:"rules_path"`
}

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// DSN is the PostgreSQL connection string, used when Driver is
	// "postgres".
	DSN string `yaml:"dsn"`
}

// ConsoleConfig holds admin websocket console settings.
type ConsoleConfig struct {
	// Addr is the listen address, e.g. ":8425". Empty disables the
	// console.
	Addr string `yaml:"addr"`

	// PasswordHash is the bcrypt hash of the console password. Empty
	// allows unauthenticated access (local development only).
	PasswordHash string `yaml:"password_hash"`

	// MaxMessageSize is the maximum websocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// ServerConfig is the root configuration document.
type ServerConfig struct {
	Gifting  GiftingConfig  `yaml:"gifting"`
	Database DatabaseConfig `yaml:"database"`
	Console  ConsoleConfig  `yaml:"console"`
	Logging  LoggingConfig  `yaml:"logging"`

	// DataDir holds the world fixtures (npcs.yaml, players.yaml).
	DataDir string `yaml:"data_dir"`
}

// DefaultConfig returns a ServerConfig with the same defaults the original
// mod ships with.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Gifting: GiftingConfig{
			Scheduling:                worlddate.SchedulingSameDay,
			FriendshipMultiplier:      0.6,
			QuestFriendshipMultiplier: 1.0,
			RequireConfirmation:       true,
			RequireQuestCompletion:    true,
			GiftTasteVisibility:       TasteVisibilityKnown,
			DetailedReturnReasons:     false,
			EnableQuests:              true,
			RulesPath:                 "assets/rules.yaml",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "data/penpals.db",
		},
		Console: ConsoleConfig{
			Addr:           ":8425",
			MaxMessageSize: 4096,
		},
		Logging: LoggingConfig{
			Level:          "INFO",
			ConsoleEnabled: true,
			ConsoleFormat:  "text",
			FileEnabled:    false,
			FilePath:       "logs/penpals.log",
			FileFormat:     "text",
			FileMaxSizeMB:  10,
			FileMaxBackups: 5,
			FileMaxAgeDays: 30,
		},
		DataDir: "data",
	}
}

// LoadConfig loads configuration from a YAML file, falling back to defaults
// when the file is missing.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	config.Normalize()
	return config, nil
}

// Normalize clamps out-of-range values back into their valid ranges.
func (c *ServerConfig) Normalize() {
	g := &c.Gifting
	if g.FriendshipMultiplier < 0.05 {
		g.FriendshipMultiplier = 0.05
	}
	if g.FriendshipMultiplier > 1.0 {
		g.FriendshipMultiplier = 1.0
	}
	if g.QuestFriendshipMultiplier < 0 {
		g.QuestFriendshipMultiplier = 0
	}
	if g.Scheduling != worlddate.SchedulingNextDay {
		g.Scheduling = worlddate.SchedulingSameDay
	}
	switch g.GiftTasteVisibility {
	case TasteVisibilityKnown, TasteVisibilityAll, TasteVisibilityNone:
	default:
		g.GiftTasteVisibility = TasteVisibilityKnown
	}
}

// ShowTaste reports whether a taste should be shown in previews, given
// whether the player already knows it.
func (g *GiftingConfig) ShowTaste(known bool) bool {
	switch g.GiftTasteVisibility {
	case TasteVisibilityAll:
		return true
	case TasteVisibilityNone:
		return false
	default:
		return known
	}
}
