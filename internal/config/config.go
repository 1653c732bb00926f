package config

import (
	"log"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Redirect   `yaml:"redirect"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Port int `yaml:"port" env:"PORT" env-default:"5000"`
}

// Database holds the storage connection descriptor.
type Database struct {
	Host            string `yaml:"host" env:"DB_ADDR" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	PasswordFile    string `yaml:"password_file" env:"DB_PASSWORD_FILE"`
	DBName          string `yaml:"dbname" env:"DB_DATABASE" env-required:"true"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"50"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

// Redirect holds redirect-path specific configuration.
type Redirect struct {
	// Homepage is where GET / goes; empty means a blank 200 response.
	Homepage string `yaml:"homepage" env:"HOMEPAGE"`
	// CampaignRulesPath points at the yaml rule table; empty disables injection.
	CampaignRulesPath string `yaml:"campaign_rules_path" env:"CAMPAIGN_RULES_PATH"`
	// GeoIPDBPath points at a MaxMind country database; empty disables lookups.
	GeoIPDBPath string `yaml:"geoip_db_path" env:"GEOIP_DB_PATH"`
	// UARegexesPath overrides the compiled-in uap regex set.
	UARegexesPath string `yaml:"ua_regexes_path" env:"UA_REGEXES_PATH"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	// Try to load config file
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	if err := cfg.Database.applyPasswordFile(); err != nil {
		log.Fatalf("cannot read database password file: %s", err)
	}
	if cfg.Database.Password == "" {
		log.Fatal("missing database password: set DB_PASSWORD or DB_PASSWORD_FILE")
	}

	return &cfg
}

// applyPasswordFile fills Password from PasswordFile when the env var is
// empty. This is how docker secrets reach the container.
func (d *Database) applyPasswordFile() error {
	if d.Password != "" || d.PasswordFile == "" {
		return nil
	}

	raw, err := os.ReadFile(d.PasswordFile)
	if err != nil {
		return err
	}

	d.Password = strings.TrimSpace(string(raw))
	return nil
}
