package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"log"
)

const (
	IsolationGoroutine = "goroutine"
	IsolationProcess   = "process"
)

type Config struct {
	HTTP     HTTP
	Redis    Redis
	Postgres Postgres
	SMTP     SMTP
	Gemini   Gemini
	Pool     Pool
	Feed     Feed
	Outbox   Outbox
}

type HTTP struct {
	Port int `env:"HTTP_Port" envDefault:"8080"`
}

type Redis struct {
	Addr          string `env:"Redis_Address"`
	Password      string `env:"Redis_Password"`
	DB            int    `env:"Redis_DB"`
	StreamKey     string `env:"Redis_StreamKey" envDefault:"alfaaz:outbox"`
	Group         string `env:"Redis_Group" envDefault:"mailers"`
	ScheduledZSet string `env:"Redis_ScheduledZSet" envDefault:"alfaaz:outbox:scheduled"`
	DLQStreamKey  string `env:"Redis_DLQStreamKey" envDefault:"alfaaz:outbox:dlq"`
}

// Enabled reports whether an outbox is configured at all.
func (r Redis) Enabled() bool { return r.Addr != "" }

type Postgres struct {
	DSN string `env:"Postgres_DSN"`
}

type SMTP struct {
	Host     string `env:"SMTP_Host" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_Port" envDefault:"587"`
	User     string `env:"EMAIL_USER"`
	Pass     string `env:"EMAIL_PASS"`
	FromName string `env:"SMTP_FromName" envDefault:"अल्फाज़"`
	// Insecure disables TLS, for local relays only.
	Insecure bool `env:"SMTP_Insecure"`
}

type Gemini struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"Gemini_Model" envDefault:"gemini-flash-latest"`
	BaseURL string        `env:"Gemini_BaseURL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout time.Duration `env:"Gemini_Timeout" envDefault:"30s"`
}

type Pool struct {
	MaxWorkers  int           `env:"Pool_MaxWorkers" envDefault:"8"`
	QueueWait   time.Duration `env:"Pool_QueueWait" envDefault:"5s"`
	TaskTimeout time.Duration `env:"Pool_TaskTimeout" envDefault:"45s"`
	Isolation   string        `env:"Pool_Isolation" envDefault:"goroutine"`
}

type Feed struct {
	PostTTL         time.Duration `env:"Feed_PostTTL" envDefault:"72h"`
	CacheTTL        time.Duration `env:"Feed_CacheTTL" envDefault:"30s"`
	JanitorInterval time.Duration `env:"Feed_JanitorInterval" envDefault:"10m"`
}

type Outbox struct {
	MaxAttempts int           `env:"Outbox_MaxAttempts" envDefault:"5"`
	BaseBackoff time.Duration `env:"Outbox_BaseBackoff" envDefault:"2s"`
	MaxBackoff  time.Duration `env:"Outbox_MaxBackoff" envDefault:"5m"`
}

// Parse reads an optional .env file and then the process environment.
func Parse() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load() *Config {
	c, err := Parse()
	if err != nil {
		log.Fatal(err)
	}

	return c
}

func (c *Config) Validate() error {
	var errs []error
	if c.Pool.MaxWorkers <= 0 {
		errs = append(errs, fmt.Errorf("Pool_MaxWorkers must be positive, got %d", c.Pool.MaxWorkers))
	}
	if c.Pool.QueueWait < 0 {
		errs = append(errs, fmt.Errorf("Pool_QueueWait must not be negative, got %s", c.Pool.QueueWait))
	}
	switch c.Pool.Isolation {
	case IsolationGoroutine, IsolationProcess:
	default:
		errs = append(errs, fmt.Errorf("Pool_Isolation must be %q or %q, got %q", IsolationGoroutine, IsolationProcess, c.Pool.Isolation))
	}
	if c.Outbox.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("Outbox_MaxAttempts must be positive, got %d", c.Outbox.MaxAttempts))
	}
	if c.Feed.PostTTL <= 0 {
		errs = append(errs, fmt.Errorf("Feed_PostTTL must be positive, got %s", c.Feed.PostTTL))
	}
	if c.Feed.JanitorInterval <= 0 {
		errs = append(errs, fmt.Errorf("Feed_JanitorInterval must be positive, got %s", c.Feed.JanitorInterval))
	}
	return errors.Join(errs...)
}
