package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/menuforge/menuforge/compose"
	"github.com/menuforge/menuforge/fonts"
	"github.com/menuforge/menuforge/store"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "menuforge.toml"

// Config is the TOML configuration shared by all commands.
type Config struct {
	DB         string `toml:"db"`
	FontsDir   string `toml:"fonts_dir"`
	Listen     string `toml:"listen"`
	ChromePath string `toml:"chrome_path"`
	BaseURL    string `toml:"base_url"`
	AssetsDir  string `toml:"assets_dir"`
	WebfontURL string `toml:"webfont_url"`
}

func defaultConfig() Config {
	return Config{
		DB:        "menuforge.db",
		FontsDir:  "fonts",
		Listen:    ":8080",
		BaseURL:   "http://localhost:8080",
		AssetsDir: ".",
	}
}

// loadConfig reads the TOML file at path, or the default file when path is
// empty and it exists. Missing keys keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// environment bundles what every command needs: the config, the open store
// and the composed pipeline.
type environment struct {
	cfg      Config
	store    *store.Store
	fonts    *fonts.Registry
	pipeline *compose.Pipeline
	log      *log.Logger
}

func setup(configPath string, logger *log.Logger) (*environment, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	registry := fonts.NewRegistry(cfg.FontsDir)
	return &environment{
		cfg:      cfg,
		store:    st,
		fonts:    registry,
		pipeline: compose.New(st, registry, logger),
		log:      logger,
	}, nil
}

func (e *environment) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing store", "err", err)
	}
}
