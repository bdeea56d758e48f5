package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	UniverseDir string `yaml:"universe_dir"`
	LogDir      string `yaml:"log_dir"`
	ReportDir   string `yaml:"report_dir"`

	Risk struct {
		Capital      float64 `yaml:"capital"`
		RiskFraction float64 `yaml:"risk_fraction"`
	} `yaml:"risk"`

	Trading struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"trading"`
	Monitor struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"monitor"`
	EOD struct {
		At string `yaml:"at"` // "15:40" wall clock, IST
	} `yaml:"eod"`

	News struct {
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		Feeds          []string `yaml:"feeds"`
		Queries        []string `yaml:"queries"`
	} `yaml:"news"`

	Data struct {
		FrameDays      int `yaml:"frame_days"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"data"`
}

func (c *Config) Validate() error {
	if c.UniverseDir == "" {
		return errors.New("universe_dir cannot be empty")
	}
	if c.Risk.Capital <= 0 {
		return fmt.Errorf("risk.capital must be positive, got %.2f", c.Risk.Capital)
	}
	if c.Risk.RiskFraction <= 0 || c.Risk.RiskFraction > 1 {
		return fmt.Errorf("risk.risk_fraction must be in (0,1], got %.4f", c.Risk.RiskFraction)
	}
	if _, err := time.Parse("15:04", c.EOD.At); err != nil {
		return fmt.Errorf("eod.at must be HH:MM, got %q", c.EOD.At)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
	if c.Trading.IntervalSeconds == 0 {
		c.Trading.IntervalSeconds = 60
	}
	if c.Monitor.IntervalSeconds == 0 {
		c.Monitor.IntervalSeconds = 60
	}
	if c.EOD.At == "" {
		c.EOD.At = "15:40"
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 10
	}
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = []string{
			"https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms",
			"https://www.moneycontrol.com/rss/marketreports.xml",
			"https://www.livemint.com/rss/markets",
		}
	}
	if len(c.News.Queries) == 0 {
		c.News.Queries = []string{"global stock market", "Indian stock market"}
	}
	if c.Data.FrameDays == 0 {
		c.Data.FrameDays = 5
	}
	if c.Data.TimeoutSeconds == 0 {
		c.Data.TimeoutSeconds = 20
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
