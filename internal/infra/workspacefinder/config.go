package workspacefinder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/navlink/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, read after the optional <root>/.env file is loaded.
const (
	EnvBaseURL     = "NAVLINK_BASE_URL"
	EnvMatch       = "NAVLINK_MATCH"
	EnvConcurrency = "NAVLINK_CONCURRENCY"
)

// LoadConfig loads navlink.yaml from the workspace root, applies defaults and
// then environment overrides.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	// Unknown or misplaced keys are rejected.
	var y yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y.Navlink); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// .env is optional; existing process variables win over it.
	envPath := filepath.Join(root, ".env")
	if _, statErr := os.Stat(envPath); statErr == nil {
		if err := godotenv.Load(envPath); err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.dotenv",
				Kind: domain.KindInvalidConfig,
				Path: envPath,
				Err:  err,
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.env",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	return cfg, nil
}

func apply(cfg *domain.Config, y yamlNavlink) error {
	if len(y.Roots) > 0 {
		roots := make([]string, 0, len(y.Roots))
		for i, r := range y.Roots {
			r = strings.TrimSpace(r)
			if !strings.HasPrefix(r, "/") || (len(r) > 1 && strings.HasSuffix(r, "/")) {
				return fmt.Errorf("field roots[%d]: %q must start with / and have no trailing slash: %w", i, r, domain.ErrInvalidConfig)
			}
			roots = append(roots, r)
		}
		cfg.Roots = roots
	}

	if y.Paths.SidebarsDir != "" {
		cfg.Paths.SidebarsDir = y.Paths.SidebarsDir
	}
	if y.Paths.VersionsFile != "" {
		cfg.Paths.VersionsFile = y.Paths.VersionsFile
	}
	if y.Paths.GlobalData != "" {
		cfg.Paths.GlobalData = y.Paths.GlobalData
	}
	if y.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Paths.ReportsDir
	}

	if y.Resolve.Match != "" {
		m, err := domain.ParseMatchPolicy(y.Resolve.Match)
		if err != nil {
			return fmt.Errorf("field resolve.match: %w", err)
		}
		cfg.Resolve.Match = m
	}
	if y.Resolve.VersionsPath != "" {
		cfg.Resolve.VersionsPath = y.Resolve.VersionsPath
	}

	if y.Site.BaseURL != "" {
		cfg.Site.BaseURL = strings.TrimRight(y.Site.BaseURL, "/")
	}

	if y.Check.Concurrency != nil {
		if *y.Check.Concurrency < 1 {
			return fmt.Errorf("field check.concurrency: must be >= 1: %w", domain.ErrInvalidConfig)
		}
		cfg.Check.Concurrency = *y.Check.Concurrency
	}
	if y.Check.Timeout != "" {
		d, err := time.ParseDuration(y.Check.Timeout)
		if err != nil {
			return fmt.Errorf("field check.timeout: %v: %w", err, domain.ErrInvalidConfig)
		}
		cfg.Check.Timeout = d
	}
	return nil
}

func applyEnv(cfg *domain.Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Site.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv(EnvMatch)); v != "" {
		m, err := domain.ParseMatchPolicy(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMatch, err)
		}
		cfg.Resolve.Match = m
	}
	if v := strings.TrimSpace(os.Getenv(EnvConcurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: %q is not a positive integer: %w", EnvConcurrency, v, domain.ErrInvalidConfig)
		}
		cfg.Check.Concurrency = n
	}
	return nil
}

type yamlConfig struct {
	Navlink yamlNavlink `yaml:"navlink"`
}

type yamlNavlink struct {
	Roots []string `yaml:"roots"`

	Paths struct {
		SidebarsDir  string `yaml:"sidebars_dir"`
		VersionsFile string `yaml:"versions_file"`
		GlobalData   string `yaml:"global_data"`
		ReportsDir   string `yaml:"reports_dir"`
	} `yaml:"paths"`

	Resolve struct {
		Match        string `yaml:"match"`
		VersionsPath string `yaml:"versions_path"`
	} `yaml:"resolve"`

	Site struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"site"`

	Check struct {
		Concurrency *int   `yaml:"concurrency"`
		Timeout     string `yaml:"timeout"`
	} `yaml:"check"`
}
