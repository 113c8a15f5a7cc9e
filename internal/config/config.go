package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "NEWS_DIGEST_CONFIG"
	mailUserEnv      = "GMAIL_USER"
	mailPasswordEnv  = "GMAIL_APP_PASSWORD"
	mailRecipientEnv = "RECIPIENT_EMAIL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	HTTP        HTTPConfig        `yaml:"http"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Mail        MailConfig        `yaml:"mail"`
	Sources     []SourceConfig    `yaml:"sources"`
	Topics      []TopicConfig     `yaml:"topics"`
}

// LoggingConfig controls the slog handler level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig describes the shared outbound request identity.
type HTTPConfig struct {
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-call bound as a duration.
func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// SchedulerConfig defines when the digest run should trigger. An empty
// cron expression means a single immediate run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// AggregationConfig tunes the fallback collection policy.
type AggregationConfig struct {
	MinAcceptable int `yaml:"minAcceptable"`
	MaxResults    int `yaml:"maxResults"`
	PacingSeconds int `yaml:"pacingSeconds"`
}

// Pacing resolves the politeness delay between source attempts.
func (a AggregationConfig) Pacing() time.Duration {
	if a.PacingSeconds <= 0 {
		return time.Second
	}
	return time.Duration(a.PacingSeconds) * time.Second
}

// MailConfig wires all data required to deliver the digest.
type MailConfig struct {
	Sender    string `yaml:"sender"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
	SMTPHost  string `yaml:"smtpHost"`
	SMTPPort  string `yaml:"smtpPort"`
}

// Configured reports whether the delivery step can run at all. Missing
// credentials skip delivery; they never fail the collection run.
func (m MailConfig) Configured() bool {
	return m.Sender != "" && m.Password != "" && m.Recipient != ""
}

// SourceConfig describes a single upstream provider. Selector fields are
// only meaningful for kind "search"; feed sources need just the URL.
type SourceConfig struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	URL           string `yaml:"url"`
	ItemSelector  string `yaml:"itemSelector"`
	TitleSelector string `yaml:"titleSelector"`
	BaseURL       string `yaml:"baseUrl"`
	Limit         int    `yaml:"limit"`
}

// TopicConfig binds a category to its keyword filter and its
// priority-ordered fallback chain of (source, query) attempts.
type TopicConfig struct {
	Category string          `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
	Attempts []AttemptConfig `yaml:"attempts"`
}

// AttemptConfig names one (source, query variant) pair.
type AttemptConfig struct {
	Source string `yaml:"source"`
	Query  string `yaml:"query"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = defaultConfig().Topics
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(mailUserEnv); v != "" {
		c.Mail.Sender = v
	}

	if v := os.Getenv(mailPasswordEnv); v != "" {
		c.Mail.Password = v
	}

	if v := os.Getenv(mailRecipientEnv); v != "" {
		c.Mail.Recipient = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.HTTP.UserAgent != "" {
		base.HTTP.UserAgent = override.HTTP.UserAgent
	}
	if override.HTTP.TimeoutSeconds > 0 {
		base.HTTP.TimeoutSeconds = override.HTTP.TimeoutSeconds
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Aggregation.MinAcceptable > 0 {
		base.Aggregation.MinAcceptable = override.Aggregation.MinAcceptable
	}
	if override.Aggregation.MaxResults > 0 {
		base.Aggregation.MaxResults = override.Aggregation.MaxResults
	}
	if override.Aggregation.PacingSeconds > 0 {
		base.Aggregation.PacingSeconds = override.Aggregation.PacingSeconds
	}

	if override.Mail.Sender != "" {
		base.Mail.Sender = override.Mail.Sender
	}
	if override.Mail.Password != "" {
		base.Mail.Password = override.Mail.Password
	}
	if override.Mail.Recipient != "" {
		base.Mail.Recipient = override.Mail.Recipient
	}
	if override.Mail.SMTPHost != "" {
		base.Mail.SMTPHost = override.Mail.SMTPHost
	}
	if override.Mail.SMTPPort != "" {
		base.Mail.SMTPPort = override.Mail.SMTPPort
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	if len(override.Topics) > 0 {
		base.Topics = override.Topics
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		HTTP: HTTPConfig{
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			TimeoutSeconds: 10,
		},
		Scheduler: SchedulerConfig{CronExpression: "", Timezone: defaultTimezone, location: tz},
		Aggregation: AggregationConfig{
			MinAcceptable: 3,
			MaxResults:    5,
			PacingSeconds: 1,
		},
		Mail: MailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: "587",
		},
		Sources: []SourceConfig{
			{
				Name:          "Yonhap News",
				Kind:          "search",
				URL:           "https://www.yna.co.kr/search/index?query=%s&date=",
				ItemSelector:  "a.search-news-link",
				TitleSelector: "strong",
				BaseURL:       "https://www.yna.co.kr",
				Limit:         5,
			},
			{
				Name:          "Naver News",
				Kind:          "search",
				URL:           "https://search.naver.com/search.naver?where=news&query=%s&sort=1",
				ItemSelector:  "a.news_tit",
				TitleSelector: "",
				Limit:         3,
			},
			{
				Name:  "Google News",
				Kind:  "feed",
				URL:   "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
				Limit: 5,
			},
		},
		Topics: []TopicConfig{
			{
				Category: "semiconductor",
				Keywords: []string{"semiconductor", "chip", "foundry", "wafer", "반도체"},
				Attempts: []AttemptConfig{
					{Source: "Yonhap News", Query: "semiconductor"},
					{Source: "Naver News", Query: "semiconductor"},
					{Source: "Google News", Query: "semiconductor industry"},
				},
			},
			{
				Category: "macroeconomy",
				Keywords: nil,
				Attempts: []AttemptConfig{
					{Source: "Yonhap News", Query: "economy"},
					{Source: "Naver News", Query: "economy"},
					{Source: "Google News", Query: "macroeconomy"},
				},
			},
		},
	}
}
