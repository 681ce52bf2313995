package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Cache     CacheConfig     `yaml:"cache"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SourceConfig selects where the repertoire is loaded from: a local xlsx
// workbook, or per-sheet CSV exports of a shared spreadsheet. Exactly one
// must be configured.
type SourceConfig struct {
	WorkbookPath string       `yaml:"workbook_path"`
	Sheets       SheetsConfig `yaml:"sheets"`
	// KnownMembers seeds song key-column detection when the roster sheet is
	// missing or incomplete.
	KnownMembers []string `yaml:"known_members"`
}

// SheetsConfig holds the shared spreadsheet document ID and the per-sheet
// grid identifiers. A sheet with no gid entry is optional and skipped.
type SheetsConfig struct {
	DocID string            `yaml:"doc_id"`
	GIDs  map[string]string `yaml:"gids"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
	// KeepSnapshots bounds how many load snapshots are retained. Zero means
	// the default of 10.
	KeepSnapshots int `yaml:"keep_snapshots"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix REPERTOIRE_ and underscore-separated
// paths:
//
//	REPERTOIRE_SERVER_HOST, REPERTOIRE_SERVER_PORT,
//	REPERTOIRE_WORKBOOK_PATH, REPERTOIRE_DOC_ID,
//	REPERTOIRE_CACHE_PATH, REPERTOIRE_TS_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPERTOIRE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPERTOIRE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPERTOIRE_WORKBOOK_PATH"); v != "" {
		cfg.Source.WorkbookPath = v
	}
	if v := os.Getenv("REPERTOIRE_DOC_ID"); v != "" {
		cfg.Source.Sheets.DocID = v
	}
	if v := os.Getenv("REPERTOIRE_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("REPERTOIRE_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
}

func (c *Config) applyDefaults() {
	if c.Cache.Path == "" {
		c.Cache.Path = "repertoire.db"
	}
	if c.Cache.KeepSnapshots == 0 {
		c.Cache.KeepSnapshots = 10
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	hasWorkbook := c.Source.WorkbookPath != ""
	hasSheets := c.Source.Sheets.DocID != ""
	if !hasWorkbook && !hasSheets {
		return fmt.Errorf("source requires workbook_path or sheets.doc_id")
	}
	if hasWorkbook && hasSheets {
		return fmt.Errorf("source.workbook_path and source.sheets.doc_id are mutually exclusive")
	}
	if hasSheets && len(c.Source.Sheets.GIDs) == 0 {
		return fmt.Errorf("sheets.gids requires at least one sheet")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
