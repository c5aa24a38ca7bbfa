package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"MacroRadar/internal/calculator"
	"MacroRadar/internal/hierarchy"
)

// MemberConfig is one instrument inside a group.
type MemberConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// GroupConfig is one category of the hierarchy, in priority order.
type GroupConfig struct {
	ID      string         `yaml:"id"`
	Label   string         `yaml:"label"`
	Members []MemberConfig `yaml:"members"`
}

// Config holds all application configuration.
type Config struct {
	Data struct {
		LookbackDays int      `yaml:"lookback_days"`
		MacroCodes   []string `yaml:"macro_codes"`
	} `yaml:"data"`
	Metrics struct {
		Window       int     `yaml:"window"`
		MinFraction  float64 `yaml:"min_fraction"`
		ShortHorizon int     `yaml:"short_horizon"`
		RSIPeriod    int     `yaml:"rsi_period"`
		EMASpans     []int   `yaml:"ema_spans"`
		Benchmark    string  `yaml:"benchmark"`
	} `yaml:"metrics"`
	Hierarchy struct {
		RootID    string             `yaml:"root_id"`
		RootLabel string             `yaml:"root_label"`
		ColorDays int                `yaml:"color_days"`
		Groups    []GroupConfig      `yaml:"groups"`
		Anchors   map[string]float64 `yaml:"anchors"`
	} `yaml:"hierarchy"`
	Dispersion struct {
		Benchmark   string   `yaml:"benchmark"`    // cap-weighted index
		EqualWeight string   `yaml:"equal_weight"` // equal-weight twin
		Sectors     []string `yaml:"sectors"`
		Smooth      int      `yaml:"smooth"`
	} `yaml:"dispersion"`
	Snapshot struct {
		// Weekday is a pointer so an explicit Sunday (0) survives the
		// defaulting pass. 0=Sunday .. 6=Saturday.
		Weekday    *int   `yaml:"weekday"`
		Frames     int    `yaml:"frames"`
		Workers    int    `yaml:"workers"`
		OutputFile string `yaml:"output_file"`
	} `yaml:"snapshot"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		cfg.Metrics.Benchmark = v
	}
	if v := os.Getenv("SNAPSHOT_FILE"); v != "" {
		cfg.Snapshot.OutputFile = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Data.LookbackDays = days
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data.LookbackDays == 0 {
		c.Data.LookbackDays = 730
	}
	if len(c.Data.MacroCodes) == 0 {
		c.Data.MacroCodes = []string{"WALCL", "WTREGEN", "RRPONTSYD", "M2SL"}
	}
	if c.Metrics.Window == 0 {
		c.Metrics.Window = 250
	}
	if c.Metrics.MinFraction == 0 {
		c.Metrics.MinFraction = 0.9
	}
	if c.Metrics.ShortHorizon == 0 {
		c.Metrics.ShortHorizon = 20
	}
	if c.Metrics.RSIPeriod == 0 {
		c.Metrics.RSIPeriod = 14
	}
	if len(c.Metrics.EMASpans) == 0 {
		c.Metrics.EMASpans = []int{20, 60, 120, 200}
	}
	if c.Metrics.Benchmark == "" {
		c.Metrics.Benchmark = "SPY"
	}
	if c.Hierarchy.RootID == "" {
		c.Hierarchy.RootID = "root"
	}
	if c.Hierarchy.RootLabel == "" {
		c.Hierarchy.RootLabel = "全球资金池"
	}
	if c.Hierarchy.ColorDays == 0 {
		c.Hierarchy.ColorDays = 30
	}
	if len(c.Hierarchy.Groups) == 0 {
		c.Hierarchy.Groups = defaultGroups()
	}
	if len(c.Hierarchy.Anchors) == 0 {
		c.Hierarchy.Anchors = map[string]float64{
			"SPY": 55000, "TLT": 52000, "GLD": 14000, "BTC-USD": 2500,
		}
	}
	if c.Dispersion.Benchmark == "" {
		c.Dispersion.Benchmark = "SPY"
	}
	if c.Dispersion.EqualWeight == "" {
		c.Dispersion.EqualWeight = "RSP"
	}
	if len(c.Dispersion.Sectors) == 0 {
		c.Dispersion.Sectors = []string{
			"XLK", "XLF", "XLE", "XLV", "XLY", "XLP", "XLI", "XLB", "XLU", "XLRE", "XLC",
		}
	}
	if c.Dispersion.Smooth == 0 {
		c.Dispersion.Smooth = 20
	}
	if c.Snapshot.Weekday == nil {
		friday := int(time.Friday)
		c.Snapshot.Weekday = &friday
	}
	if c.Snapshot.Frames == 0 {
		c.Snapshot.Frames = 52
	}
	if c.Snapshot.Workers == 0 {
		c.Snapshot.Workers = 4
	}
	if c.Snapshot.OutputFile == "" {
		c.Snapshot.OutputFile = "data/snapshots.json"
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/macro_radar.db"
	}
}

// defaultGroups is the liquidity pool: money sources, policy valves, and
// the assets the liquidity flows into.
func defaultGroups() []GroupConfig {
	return []GroupConfig{
		{ID: "source", Label: "Source (水源)", Members: []MemberConfig{
			{ID: "M2", Label: "💰 M2 货币供应"},
			{ID: "Fed_Assets", Label: "🖨️ 美联储资产"},
			{ID: "Net_Liquidity", Label: "🏦 净流动性"},
		}},
		{ID: "valve", Label: "Valve (调节阀)", Members: []MemberConfig{
			{ID: "TGA", Label: "👜 财政部 TGA"},
			{ID: "RRP", Label: "♻️ 逆回购 RRP"},
		}},
		{ID: "asset", Label: "Asset (资产)", Members: []MemberConfig{
			{ID: "SPY", Label: "🇺🇸 美股"},
			{ID: "TLT", Label: "📜 美债"},
			{ID: "GLD", Label: "🥇 黄金"},
			{ID: "BTC-USD", Label: "₿ 比特币"},
		}},
	}
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Metrics.Window <= 0 {
		return fmt.Errorf("metrics.window must be positive")
	}
	if c.Metrics.MinFraction <= 0 || c.Metrics.MinFraction > 1 {
		return fmt.Errorf("metrics.min_fraction must be in (0, 1]")
	}
	if c.Metrics.ShortHorizon <= 0 {
		return fmt.Errorf("metrics.short_horizon must be positive")
	}
	if len(c.Metrics.EMASpans) != 4 {
		return fmt.Errorf("metrics.ema_spans must list exactly 4 horizons")
	}
	for i := 1; i < 4; i++ {
		if c.Metrics.EMASpans[i] <= c.Metrics.EMASpans[i-1] {
			return fmt.Errorf("metrics.ema_spans must be strictly ascending")
		}
	}
	if c.Metrics.Benchmark == "" {
		return fmt.Errorf("metrics.benchmark is required")
	}
	if c.Snapshot.Weekday == nil || *c.Snapshot.Weekday < 0 || *c.Snapshot.Weekday > 6 {
		return fmt.Errorf("snapshot.weekday must be 0-6")
	}
	if c.Dispersion.Smooth <= 0 {
		return fmt.Errorf("dispersion.smooth must be positive")
	}
	if c.Snapshot.Frames <= 0 {
		return fmt.Errorf("snapshot.frames must be positive")
	}
	if len(c.Hierarchy.Groups) == 0 {
		return fmt.Errorf("hierarchy.groups must not be empty")
	}
	return nil
}

// Params maps the config onto calculator parameters.
func (c *Config) Params() calculator.Params {
	var spans [4]int
	copy(spans[:], c.Metrics.EMASpans)
	return calculator.Params{
		Window:       c.Metrics.Window,
		MinFraction:  c.Metrics.MinFraction,
		ShortHorizon: c.Metrics.ShortHorizon,
		RSIPeriod:    c.Metrics.RSIPeriod,
		EMASpans:     spans,
		BenchmarkID:  c.Metrics.Benchmark,
	}
}

// Schema resolves the configured groups into a partitioned hierarchy
// schema.
func (c *Config) Schema() *hierarchy.Schema {
	cats := make([]hierarchy.Category, 0, len(c.Hierarchy.Groups))
	for _, g := range c.Hierarchy.Groups {
		cat := hierarchy.Category{ID: g.ID, Label: g.Label}
		for _, m := range g.Members {
			cat.Members = append(cat.Members, hierarchy.Member{ID: m.ID, Label: m.Label})
		}
		cats = append(cats, cat)
	}
	return hierarchy.NewSchema(c.Hierarchy.RootID, c.Hierarchy.RootLabel, cats)
}

// SampleWeekday returns the configured sampling weekday.
func (c *Config) SampleWeekday() time.Weekday { return time.Weekday(*c.Snapshot.Weekday) }

// AssetSymbols returns every configured instrument that is fetched as a
// market price rather than derived from macro columns: the hierarchy
// members, the metrics benchmark, and the dispersion-radar tickers.
func (c *Config) AssetSymbols() []string {
	derived := map[string]bool{
		"M2": true, "Fed_Assets": true, "Net_Liquidity": true, "TGA": true, "RRP": true,
	}
	var out []string
	seen := map[string]bool{}
	add := func(id string) {
		if id == "" || derived[id] || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, g := range c.Hierarchy.Groups {
		for _, m := range g.Members {
			add(m.ID)
		}
	}
	add(c.Metrics.Benchmark)
	add(c.Dispersion.Benchmark)
	add(c.Dispersion.EqualWeight)
	for _, s := range c.Dispersion.Sectors {
		add(s)
	}
	return out
}
