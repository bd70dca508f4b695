package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Unit names recognized in the strategy weight table.
const (
	UnitTrend      = "trend"
	UnitStrength   = "strength"
	UnitPosition   = "position"
	UnitDivergence = "divergence"
	UnitSentiment  = "sentiment"
)

// Divergence oscillator measures.
const (
	MeasureMACDArea = "macd_area"
	MeasureRSIPeak  = "rsi_peak"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL   string   `yaml:"base_url"`
		APIKey    string   `yaml:"api_key"`
		CSVDir    string   `yaml:"csv_dir"`
		Symbols   []string `yaml:"symbols"`
		Benchmark string   `yaml:"benchmark"`
		BarLimit  int      `yaml:"bar_limit"`
	} `yaml:"data_source"`
	Chan struct {
		MinKPerStroke      int     `yaml:"min_k_per_stroke"`
		FractalThreshold   float64 `yaml:"fractal_threshold"`
		PreferLaterFractal *bool   `yaml:"prefer_later_fractal"`
	} `yaml:"chan"`
	Indicators struct {
		MAPeriods []int `yaml:"ma_periods"`
		MACD      struct {
			Fast   int `yaml:"fast"`
			Slow   int `yaml:"slow"`
			Signal int `yaml:"signal"`
		} `yaml:"macd"`
		RSIPeriod int `yaml:"rsi_period"`
		KDJ       struct {
			Period int `yaml:"period"`
			K      int `yaml:"k"`
			D      int `yaml:"d"`
		} `yaml:"kdj"`
		Boll struct {
			Period int     `yaml:"period"`
			Mult   float64 `yaml:"mult"`
		} `yaml:"boll"`
	} `yaml:"indicators"`
	Strategy struct {
		Lookback          int                `yaml:"lookback"`
		RSThreshold       float64            `yaml:"rs_threshold"`
		RSIOverbought     float64            `yaml:"rsi_overbought"`
		RSIOversold       float64            `yaml:"rsi_oversold"`
		RSIExtremeHigh    float64            `yaml:"rsi_extreme_high"`
		RSIExtremeLow     float64            `yaml:"rsi_extreme_low"`
		DivergenceMeasure string             `yaml:"divergence_measure"`
		MinConfidence     float64            `yaml:"min_confidence"`
		Weights           map[string]float64 `yaml:"weights"`
	} `yaml:"strategy"`
	Position struct {
		Base         float64 `yaml:"base"`
		Max          float64 `yaml:"max"`
		MaxPortfolio float64 `yaml:"max_portfolio"`
		StateFile    string  `yaml:"state_file"`
	} `yaml:"position"`
	Schedule struct {
		EvalCron string `yaml:"eval_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// PreferLater reports the fractal tie-break preference (default: later bar).
func (c *Config) PreferLater() bool {
	return c.Chan.PreferLaterFractal == nil || *c.Chan.PreferLaterFractal
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A .env file is honored when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("MEDALION_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MEDALION_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("MEDALION_SYMBOLS"); v != "" {
		cfg.DataSource.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_EVAL"); v != "" {
		cfg.Schedule.EvalCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Strategy.MinConfidence = f
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"000001"}
	}
	if cfg.DataSource.BarLimit == 0 {
		cfg.DataSource.BarLimit = 300
	}
	if cfg.Chan.MinKPerStroke == 0 {
		cfg.Chan.MinKPerStroke = 5
	}
	if len(cfg.Indicators.MAPeriods) == 0 {
		cfg.Indicators.MAPeriods = []int{5, 20, 60}
	}
	if cfg.Indicators.MACD.Fast == 0 {
		cfg.Indicators.MACD.Fast = 12
	}
	if cfg.Indicators.MACD.Slow == 0 {
		cfg.Indicators.MACD.Slow = 26
	}
	if cfg.Indicators.MACD.Signal == 0 {
		cfg.Indicators.MACD.Signal = 9
	}
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.KDJ.Period == 0 {
		cfg.Indicators.KDJ.Period = 9
	}
	if cfg.Indicators.KDJ.K == 0 {
		cfg.Indicators.KDJ.K = 3
	}
	if cfg.Indicators.KDJ.D == 0 {
		cfg.Indicators.KDJ.D = 3
	}
	if cfg.Indicators.Boll.Period == 0 {
		cfg.Indicators.Boll.Period = 20
	}
	if cfg.Indicators.Boll.Mult == 0 {
		cfg.Indicators.Boll.Mult = 2.0
	}
	if cfg.Strategy.Lookback == 0 {
		cfg.Strategy.Lookback = 120
	}
	if cfg.Strategy.RSThreshold == 0 {
		cfg.Strategy.RSThreshold = 0.02
	}
	if cfg.Strategy.RSIOverbought == 0 {
		cfg.Strategy.RSIOverbought = 80
	}
	if cfg.Strategy.RSIOversold == 0 {
		cfg.Strategy.RSIOversold = 20
	}
	if cfg.Strategy.RSIExtremeHigh == 0 {
		cfg.Strategy.RSIExtremeHigh = 90
	}
	if cfg.Strategy.RSIExtremeLow == 0 {
		cfg.Strategy.RSIExtremeLow = 10
	}
	if cfg.Strategy.DivergenceMeasure == "" {
		cfg.Strategy.DivergenceMeasure = MeasureMACDArea
	}
	if cfg.Strategy.MinConfidence == 0 {
		cfg.Strategy.MinConfidence = 0.5
	}
	if len(cfg.Strategy.Weights) == 0 {
		cfg.Strategy.Weights = map[string]float64{
			UnitTrend:      0.30,
			UnitStrength:   0.15,
			UnitPosition:   0.15,
			UnitDivergence: 0.25,
			UnitSentiment:  0.15,
		}
	}
	if cfg.Position.Base == 0 {
		cfg.Position.Base = 0.2
	}
	if cfg.Position.Max == 0 {
		cfg.Position.Max = 0.5
	}
	if cfg.Position.MaxPortfolio == 0 {
		cfg.Position.MaxPortfolio = 0.8
	}
	if cfg.Position.StateFile == "" {
		cfg.Position.StateFile = "data/portfolio_state.json"
	}
	if cfg.Schedule.EvalCron == "" {
		cfg.Schedule.EvalCron = "0 30 15 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/medalion.db"
	}
}

// weightTolerance is the allowed deviation of the weight sum from 1.
const weightTolerance = 1e-6

// Validate checks configuration consistency. Invalid values are rejected,
// never silently clamped.
func (c *Config) Validate() error {
	if c.Chan.MinKPerStroke < 1 {
		return fmt.Errorf("chan.min_k_per_stroke must be >= 1, got %d", c.Chan.MinKPerStroke)
	}
	if c.Chan.FractalThreshold < 0 || c.Chan.FractalThreshold >= 0.5 {
		return fmt.Errorf("chan.fractal_threshold must be in [0, 0.5), got %g", c.Chan.FractalThreshold)
	}
	if c.Indicators.MACD.Fast >= c.Indicators.MACD.Slow {
		return fmt.Errorf("indicators.macd fast period (%d) must be below slow period (%d)",
			c.Indicators.MACD.Fast, c.Indicators.MACD.Slow)
	}
	if c.Strategy.RSIOversold >= c.Strategy.RSIOverbought {
		return fmt.Errorf("strategy.rsi_oversold (%g) must be below rsi_overbought (%g)",
			c.Strategy.RSIOversold, c.Strategy.RSIOverbought)
	}
	if c.Strategy.RSIOverbought > 100 || c.Strategy.RSIOversold < 0 {
		return fmt.Errorf("rsi thresholds must stay within [0, 100]")
	}
	if c.Strategy.MinConfidence < 0 || c.Strategy.MinConfidence > 1 {
		return fmt.Errorf("strategy.min_confidence must be in [0, 1], got %g", c.Strategy.MinConfidence)
	}
	switch c.Strategy.DivergenceMeasure {
	case MeasureMACDArea, MeasureRSIPeak:
	default:
		return fmt.Errorf("strategy.divergence_measure must be %q or %q, got %q",
			MeasureMACDArea, MeasureRSIPeak, c.Strategy.DivergenceMeasure)
	}
	var sum float64
	for name, w := range c.Strategy.Weights {
		switch name {
		case UnitTrend, UnitStrength, UnitPosition, UnitDivergence, UnitSentiment:
		default:
			return fmt.Errorf("strategy.weights: unknown unit %q", name)
		}
		if w < 0 {
			return fmt.Errorf("strategy.weights.%s must be non-negative, got %g", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("strategy.weights must sum to 1, got %g", sum)
	}
	if c.Position.Base <= 0 || c.Position.Base > c.Position.Max {
		return fmt.Errorf("position.base must be in (0, max], got base=%g max=%g", c.Position.Base, c.Position.Max)
	}
	if c.Position.Max > 1 {
		return fmt.Errorf("position.max must be <= 1, got %g", c.Position.Max)
	}
	if c.Position.MaxPortfolio < c.Position.Max || c.Position.MaxPortfolio > 1 {
		return fmt.Errorf("position.max_portfolio must be in [max, 1], got %g", c.Position.MaxPortfolio)
	}
	return nil
}
