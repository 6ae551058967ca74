package domain

import "time"

// Config represents the navlink configuration loaded from navlink.yaml.
type Config struct {
	Roots   []string
	Paths   PathsConfig
	Resolve ResolveConfig
	Site    SiteConfig
	Check   CheckConfig
}

type PathsConfig struct {
	SidebarsDir  string
	VersionsFile string
	GlobalData   string
	ReportsDir   string
}

type ResolveConfig struct {
	Match MatchPolicy
	// VersionsPath is the JSONPath used to read versions out of the site's
	// global data file.
	VersionsPath string
}

type SiteConfig struct {
	BaseURL string
}

type CheckConfig struct {
	Concurrency int
	Timeout     time.Duration
}

// DefaultVersionsPath points at the docs plugin's default instance.
const DefaultVersionsPath = `$["docusaurus-plugin-content-docs"].default.versions`

// DefaultConfig provides sane defaults if navlink.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Roots: append([]string(nil), DefaultRoots...),
		Paths: PathsConfig{
			SidebarsDir:  "sidebars",
			VersionsFile: "versions.yaml",
			GlobalData:   ".docusaurus/globalData.json",
			ReportsDir:   "reports",
		},
		Resolve: ResolveConfig{
			Match:        MatchFirst,
			VersionsPath: DefaultVersionsPath,
		},
		Check: CheckConfig{
			Concurrency: 8,
			Timeout:     10 * time.Second,
		},
	}
}

// NewResolverFromConfig builds a Resolver honoring cfg's roots and match policy.
func NewResolverFromConfig(cfg Config, opts ...ResolverOption) *Resolver {
	base := []ResolverOption{
		WithRoots(cfg.Roots...),
		WithMatchPolicy(cfg.Resolve.Match),
	}
	return NewResolver(append(base, opts...)...)
}

// WorkspaceSpec describes where a workspace should be scaffolded.
type WorkspaceSpec struct {
	Root string
	// BaseURL is written into the scaffolded navlink.yaml.
	BaseURL string
}

// DefaultBaseURL is where a local site dev server usually listens.
const DefaultBaseURL = "http://localhost:3000"
