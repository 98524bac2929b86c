// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultURL is the public listing of job calls (not the site's home page).
const DefaultURL = "https://educacionales.mendoza.edu.ar/"

// DefaultPath is where the optional YAML overrides live.
const DefaultPath = "configs/config.yaml"

const defaultMailPort = "465"

// MailConfig holds the mail relay settings read from the environment.
// Values are kept raw; the mail notifier validates them before sending.
type MailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

type Config struct {
	ListingURL string `yaml:"url"`

	Mail           MailConfig `yaml:"-"`
	TelegramToken  string     `yaml:"-"`
	TelegramChatID string     `yaml:"-"`

	//Filter criteria
	LevelKeyword       string   `yaml:"level_keyword"`
	AllowedDepartments []string `yaml:"allowed_departments"`
	BlockPatterns      []string `yaml:"block_patterns"`
	PreferredColumns   []string `yaml:"preferred_columns"`

	//Scraping limits
	MaxPages        int           `yaml:"max_pages"`
	PageLength      int           `yaml:"page_length"`
	TableTimeout    time.Duration `yaml:"table_timeout"`
	AfterFilterWait time.Duration `yaml:"after_filter_wait"`
}

// Default returns the configuration used when no YAML file overrides it.
func Default() *Config {
	return &Config{
		ListingURL:   DefaultURL,
		LevelKeyword: "Secundario",
		AllowedDepartments: []string{
			"SAN MARTIN", "JUNIN", "RIVADAVIA", "CAPITAL", "GODOY CRUZ", "MAIPU", "GUAYMALLEN",
		},
		// LENGUA also matches LENGUA EXTRANJERA, PRECEPT matches PRECEPTOR/ES.
		BlockPatterns: []string{
			"POLITICA", "AMBIENTALES", "MICROEMPRENDIMIENTOS", "ARTISTICA", "LENGUA", "QUIMICA", "PRECEPT",
			"ORIENTADOR PSICOPEDAGOGICO", "CIENCIAS SOCIALES", "EDUCACION FISICA", "BIOLOGIA",
			"FORMACION PARA LA VIDA Y EL TRABAJO", "RECURSOS TURISTICOS", "TEATRO", "SOCIAL",
			"MARCO JURIDICO", "TURISMO", "CONTABLE", "REGENTE", "VICEDIRECTOR", "DIRECTOR",
		},
		PreferredColumns: []string{
			"Llamado", "Nivel", "Departamento", "Localidad", "Escuela",
			"Cargo", "Horas", "Turno", "Materia", "Publicado",
		},
		MaxPages:        200,
		PageLength:      100,
		TableTimeout:    30 * time.Second,
		AfterFilterWait: 4 * time.Second,
	}
}

// Load reads .env into the process environment, applies the YAML overrides
// found at path (a missing file is not an error) and picks up the mail and
// Telegram settings from the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	//Load yaml config
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	//Override with env vars
	if url := getenvStripped("URL_TABLA"); url != "" {
		cfg.ListingURL = url
	}

	cfg.Mail = MailConfig{
		Host:     getenvStripped("MAIL_HOST"),
		Port:     getenvStripped("MAIL_PORT"),
		User:     getenvStripped("MAIL_USER"),
		Password: getenvStripped("MAIL_PASS"),
		To:       getenvStripped("MAIL_TO"),
	}
	if cfg.Mail.Port == "" {
		cfg.Mail.Port = defaultMailPort
	}

	cfg.TelegramToken = getenvStripped("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getenvStripped("TELEGRAM_CHAT_ID")

	//Set default values if not set
	defaults := Default()
	if cfg.ListingURL == "" {
		cfg.ListingURL = defaults.ListingURL
	}
	if cfg.LevelKeyword == "" {
		cfg.LevelKeyword = defaults.LevelKeyword
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaults.MaxPages
	}
	if cfg.PageLength <= 0 {
		cfg.PageLength = defaults.PageLength
	}
	if cfg.TableTimeout <= 0 {
		cfg.TableTimeout = defaults.TableTimeout
	}
	if cfg.AfterFilterWait < 0 {
		cfg.AfterFilterWait = defaults.AfterFilterWait
	}

	return cfg, nil
}

// TelegramEnabled reports whether both Telegram settings are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

// ParseTelegramChatID converts the raw TELEGRAM_CHAT_ID. It is parsed late so
// a bad value only disables Telegram.
func (c *Config) ParseTelegramChatID() (int64, error) {
	id, err := strconv.ParseInt(c.TelegramChatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", c.TelegramChatID, err)
	}
	return id, nil
}

func getenvStripped(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
