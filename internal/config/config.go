package config

import (
	"log"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Role selects which process the configuration is validated for.
type Role uint8

const (
	RoleIngest Role = iota
	RoleDeliver
	RoleWeb
)

type Kaspi struct {
	Token     string        `env:"KASPI_TOKEN"`
	BaseURL   string        `env:"KASPI_BASE_URL" envDefault:"https://kaspi.kz/shop/api/v2"`
	Timeout   time.Duration `env:"KASPI_TIMEOUT" envDefault:"30s"`
	RateLimit float64       `env:"KASPI_RATE_LIMIT" envDefault:"5"`
}

type Window struct {
	Hours       int    `env:"TIME_WINDOW_HOURS" envDefault:"2"`
	OffsetHours int    `env:"OFFSET_HOURS" envDefault:"1"`
	PageSize    int    `env:"PAGE_SIZE" envDefault:"100"`
	Status      string `env:"ORDER_STATUS" envDefault:"COMPLETED"`
	State       string `env:"ORDER_STATE" envDefault:"ARCHIVE"`
}

type Store struct {
	ArticlesFile  string        `env:"ARTICLES_FILE" envDefault:"123.txt"`
	OutputFile    string        `env:"OUTPUT_FILE" envDefault:"orders.json"`
	Name          string        `env:"STORE_NAME" envDefault:"Bio-Farm"`
	DefaultStatus string        `env:"DEFAULT_STATUS" envDefault:"new"`
	Lock          bool          `env:"STORE_LOCK" envDefault:"true"`
	LockTimeout   time.Duration `env:"STORE_LOCK_TIMEOUT" envDefault:"30s"`
}

type WhatsApp struct {
	Headless       bool          `env:"HEADLESS" envDefault:"false"`
	UserDataDir    string        `env:"USER_DATA_DIR" envDefault:"./wa_user_data"`
	BaseURL        string        `env:"WA_BASE_URL" envDefault:"https://web.whatsapp.com"`
	ComposeTimeout time.Duration `env:"WA_COMPOSE_TIMEOUT" envDefault:"45s"`
	GridTimeout    time.Duration `env:"WA_GRID_TIMEOUT" envDefault:"15s"`
}

type Review struct {
	URL    string `env:"REVIEW_URL" envDefault:"https://kaspi.kz/shop/review/productreview"`
	Rating int    `env:"REVIEW_RATING" envDefault:"5"`
}

type Loop struct {
	IngestInterval  time.Duration `env:"INGEST_INTERVAL" envDefault:"60s"`
	DeliverInterval time.Duration `env:"DELIVER_INTERVAL" envDefault:"3s"`
}

type Breaker struct {
	Threshold   uint32        `env:"BREAKER_THRESHOLD" envDefault:"5"`
	OpenTimeout time.Duration `env:"BREAKER_OPENTIMEOUT" envDefault:"5m"`
	MaxHalfOpen uint32        `env:"BREAKER_MAXHALFOPEN" envDefault:"1"`
}

type Retry struct {
	Attempts     int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	Base         time.Duration `env:"RETRY_BASE" envDefault:"3s"`
	Max          time.Duration `env:"RETRY_MAX" envDefault:"10s"`
	JitterFactor float64       `env:"RETRY_JITTERFACTOR" envDefault:"0"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
	Dev   bool   `env:"LOG_DEV" envDefault:"false"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"review-orders"`
}

type Postgres struct {
	DSN   string `env:"PG_DSN"`
	Table string `env:"PG_TABLE" envDefault:"review_journal"`
}

type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`

	Kaspi    Kaspi
	Window   Window
	Store    Store
	WhatsApp WhatsApp
	Review   Review
	Loop     Loop
	Breaker  Breaker
	Retry    Retry
	Log      Log
	Kafka    Kafka
	Pg       Postgres
}

// Load fatals on error so main() stays short.
func Load(role Role) Config {
	cfg, err := load(role)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load(role Role) (Config, error) {
	_ = godotenv.Load("env/.env")

	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseDurationMS,
		},
	})
	if err != nil {
		return Config{}, err
	}

	cfg.Kaspi.Token = strings.TrimSpace(cfg.Kaspi.Token)
	cfg.Kafka.Brokers = trimAll(cfg.Kafka.Brokers)

	if err := cfg.validate(role); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate(role Role) error {
	var missing []string
	req := map[string]string{
		"OUTPUT_FILE": c.Store.OutputFile,
	}
	if role == RoleIngest {
		req["KASPI_TOKEN"] = c.Kaspi.Token
		req["KASPI_BASE_URL"] = c.Kaspi.BaseURL
		req["ARTICLES_FILE"] = c.Store.ArticlesFile
		req["STORE_NAME"] = c.Store.Name
	}
	if role == RoleDeliver {
		req["WA_BASE_URL"] = c.WhatsApp.BaseURL
		req["REVIEW_URL"] = c.Review.URL
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &missingEnvError{Keys: missing}
	}

	if c.Window.PageSize <= 0 {
		log.Printf("PAGE_SIZE is %d, adjusting to 100", c.Window.PageSize)
		c.Window.PageSize = 100
	}
	if c.Window.Hours <= 0 {
		log.Printf("TIME_WINDOW_HOURS is %d, adjusting to 1", c.Window.Hours)
		c.Window.Hours = 1
	}
	if c.Retry.Attempts <= 0 {
		log.Printf("RETRY_ATTEMPTS is %d, adjusting to 1", c.Retry.Attempts)
		c.Retry.Attempts = 1
	}
	if c.Retry.Base <= 0 {
		log.Printf("RETRY_BASE is %v, adjusting to 1s", c.Retry.Base)
		c.Retry.Base = time.Second
	}
	if c.Retry.Max < c.Retry.Base {
		log.Printf("RETRY_MAX (%v) < RETRY_BASE (%v), adjusting max to base", c.Retry.Max, c.Retry.Base)
		c.Retry.Max = c.Retry.Base
	}
	if c.Loop.IngestInterval <= 0 {
		c.Loop.IngestInterval = time.Minute
	}
	if c.Loop.DeliverInterval <= 0 {
		c.Loop.DeliverInterval = 3 * time.Second
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// parseDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func parseDurationMS(v string) (interface{}, error) {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		return time.ParseDuration(v)
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
