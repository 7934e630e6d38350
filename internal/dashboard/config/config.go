package config

import (
	"time"

	"tw-stock-insight/pkg/config"
)

// Dashboard holds aggregation settings.
type Dashboard struct {
	// LookbackDays is the calendar window fetched from FinMind; it must cover TradingDays.
	LookbackDays int `mapstructure:"lookback_days"`
	TradingDays  int `mapstructure:"trading_days"`
	// CallTimeout bounds each outbound call.
	CallTimeout     time.Duration `mapstructure:"call_timeout"`
	FeedRefreshCron string        `mapstructure:"feed_refresh_cron"`
	DefaultTicker   string        `mapstructure:"default_ticker"`
	SearchOnStartup bool          `mapstructure:"search_on_startup"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// FinMind holds the configuration for the FinMind open data API.
type FinMind struct {
	BaseURL             string `mapstructure:"base_url"`
	Token               string `mapstructure:"token"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Sentiment holds the configuration for the daily news sentiment feed.
type Sentiment struct {
	FeedURL  string        `mapstructure:"feed_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Headlines holds the configuration for the RSS headline source.
type Headlines struct {
	BaseURL  string        `mapstructure:"base_url"`
	MaxItems int           `mapstructure:"max_items"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Cache selects the cache driver: "memory" or "redis".
type Cache struct {
	Driver string `mapstructure:"driver"`
	Prefix string `mapstructure:"prefix"`
}

// Telegram holds configuration for the Telegram digest notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	API       config.API    `mapstructure:"api"`
	Redis     config.Redis  `mapstructure:"redis"`
	Cache     Cache         `mapstructure:"cache"`
	Dashboard Dashboard     `mapstructure:"dashboard"`
	Gemini    Gemini        `mapstructure:"gemini"`
	FinMind   FinMind       `mapstructure:"finmind"`
	Sentiment Sentiment     `mapstructure:"sentiment"`
	Headlines Headlines     `mapstructure:"headlines"`
	Telegram  Telegram      `mapstructure:"telegram"`
}

// secretKeys can be supplied through the environment without a file entry.
var secretKeys = []string{
	"gemini.api_key",
	"finmind.token",
	"telegram.bot_token",
	"telegram.chat_id",
	"redis.password",
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, secretKeys...); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "tw-stock-insight"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Dashboard.LookbackDays <= 0 {
		c.Dashboard.LookbackDays = 20
	}
	if c.Dashboard.TradingDays <= 0 {
		c.Dashboard.TradingDays = 10
	}
	if c.Dashboard.CallTimeout <= 0 {
		c.Dashboard.CallTimeout = 20 * time.Second
	}
	if c.Dashboard.DefaultTicker == "" {
		c.Dashboard.DefaultTicker = "2330"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.MaxRequestPerMinute <= 0 {
		c.Gemini.MaxRequestPerMinute = 10
	}
	if c.FinMind.BaseURL == "" {
		c.FinMind.BaseURL = "https://api.finmindtrade.com/api/v4/data"
	}
	if c.FinMind.MaxRequestPerMinute <= 0 {
		c.FinMind.MaxRequestPerMinute = 60
	}
	if c.Sentiment.FeedURL == "" {
		c.Sentiment.FeedURL = "https://cdn.jsdelivr.net/gh/voidful/tw_news_stocker@main/docs/data/today.json"
	}
	if c.Sentiment.CacheTTL <= 0 {
		c.Sentiment.CacheTTL = 30 * time.Minute
	}
	if c.Headlines.BaseURL == "" {
		c.Headlines.BaseURL = "https://news.google.com/rss"
	}
	if c.Headlines.MaxItems <= 0 {
		c.Headlines.MaxItems = 15
	}
	if c.Headlines.CacheTTL <= 0 {
		c.Headlines.CacheTTL = 10 * time.Minute
	}
}
