package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Script     ScriptConfig     `mapstructure:"script"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Inbox      InboxConfig      `mapstructure:"inbox"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

// ScriptConfig holds the Apps Script web-app endpoint settings.
type ScriptConfig struct {
	URL            string        `mapstructure:"url"`             // Deployed web-app exec URL
	FolderID       string        `mapstructure:"folder_id"`       // Drive folder receiving uploads
	MasterSheet    string        `mapstructure:"master_sheet"`    // Sheet with type/category vocabulary
	DocumentsSheet string        `mapstructure:"documents_sheet"` // Sheet receiving document rows
	Timeout        time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// VocabularyConfig controls caching of the Master sheet vocabulary.
type VocabularyConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// InboxConfig points at the local staging directory for attachments.
type InboxConfig struct {
	BasePath      string `mapstructure:"base_path"`
	StagingFolder string `mapstructure:"staging_folder"`
	ArchiveFolder string `mapstructure:"archive_folder"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Timeouts and TTLs are configured in seconds
	cfg.Script.Timeout = cfg.Script.Timeout * time.Second
	cfg.Vocabulary.CacheTTL = cfg.Vocabulary.CacheTTL * time.Second

	if cfg.Script.MasterSheet == "" {
		cfg.Script.MasterSheet = "Master"
	}
	if cfg.Script.DocumentsSheet == "" {
		cfg.Script.DocumentsSheet = "Documents"
	}
	if cfg.Inbox.StagingFolder == "" {
		cfg.Inbox.StagingFolder = "staging"
	}
	if cfg.Inbox.ArchiveFolder == "" {
		cfg.Inbox.ArchiveFolder = "archived"
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
