package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix — префикс переменных окружения по умолчанию (ORDERS_HTTP_ADDR и т.д.).
const DefaultPrefix = "ORDERS"

// ErrInvalidConfig — базовая ошибка валидации конфигурации.
var ErrInvalidConfig = errors.New("invalid config")

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

// Runtime — режим запуска: auto (Lambda, если задан AWS_LAMBDA_RUNTIME_API), lambda или http.
type Runtime struct {
	Mode string `default:"auto" envconfig:"MODE"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Metrics struct {
	Enabled bool `default:"true" envconfig:"ENABLED"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"orders-api" envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"localhost:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"OTEL_SAMPLE_RATIO"`
}

// IDs — версия UUID для идентификаторов заказов (v4 — случайный, v7 — упорядоченный по времени).
type IDs struct {
	Version string `default:"v4" envconfig:"UUID_VERSION"`
}

// Forwarding — куда и как edge-обработчик пересылает заказ.
// BaseURL — базовый URL внутреннего (private) API, например https://abc.execute-api.eu-west-1.amazonaws.com/prod/.
// Static* — явные ключи для локального запуска; в Lambda ключи берутся из роли функции.
type Forwarding struct {
	BaseURL               string        `envconfig:"BASE_URL"`
	ConsumerID            string        `default:"website-bff" envconfig:"CONSUMER_ID"`
	Region                string        `default:"eu-west-1" envconfig:"REGION"`
	Service               string        `default:"execute-api" envconfig:"SERVICE"`
	Timeout               time.Duration `default:"0s" envconfig:"TIMEOUT"`
	StaticAccessKeyID     string        `envconfig:"STATIC_ACCESS_KEY_ID"`
	StaticSecretAccessKey string        `envconfig:"STATIC_SECRET_ACCESS_KEY"`
	StaticSessionToken    string        `envconfig:"STATIC_SESSION_TOKEN"`
}

// Boundary — граница авторизации внутреннего API: кто (аккаунт) и что (метод + путь) может вызывать.
// Keys — локальная связка ключей для режима http: access key → "account/secret".
type Boundary struct {
	Region            string            `default:"eu-west-1" envconfig:"REGION"`
	Stage             string            `default:"prod" envconfig:"STAGE"`
	InternalAccountID string            `envconfig:"INTERNAL_ACCOUNT_ID"`
	ExternalAccountID string            `envconfig:"EXTERNAL_ACCOUNT_ID"`
	RestAPIID         string            `envconfig:"REST_API_ID"`
	Method            string            `default:"POST" envconfig:"METHOD"`
	Path              string            `default:"/orders/" envconfig:"ROUTE_PATH"`
	Enforce           bool              `default:"false" envconfig:"ENFORCE"`
	Keys              map[string]string `envconfig:"KEYS"`
}

type Config struct {
	HTTP       HTTP
	Runtime    Runtime
	Logger     Logger
	Metrics    Metrics
	Tracing    Tracing
	IDs        IDs
	Forwarding Forwarding
	Boundary   Boundary
}

// Load — читает конфигурацию с префиксом по умолчанию.
func Load() (Config, error) {
	return LoadWithPrefix(DefaultPrefix)
}

// LoadWithPrefix — читает конфигурацию из окружения с заданным префиксом.
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// ValidateEdge — проверка настроек, без которых edge-обработчик не может работать.
func (c *Config) ValidateEdge() error {
	if strings.TrimSpace(c.Forwarding.BaseURL) == "" {
		return fmt.Errorf("%w: forwarding base url is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.Forwarding.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: forwarding base url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("%w: forwarding base url scheme %q", ErrInvalidConfig, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: forwarding base url has no host", ErrInvalidConfig)
	}
	if c.Forwarding.Region == "" || c.Forwarding.Service == "" {
		return fmt.Errorf("%w: signing region and service are required", ErrInvalidConfig)
	}
	if (c.Forwarding.StaticAccessKeyID == "") != (c.Forwarding.StaticSecretAccessKey == "") {
		return fmt.Errorf("%w: static access key id and secret must be set together", ErrInvalidConfig)
	}
	return validateIDs(c.IDs)
}

// ValidateBoundary — проверка описания границы авторизации.
func (c *Config) ValidateBoundary() error {
	b := c.Boundary
	switch {
	case b.Region == "":
		return fmt.Errorf("%w: boundary region is required", ErrInvalidConfig)
	case b.Stage == "":
		return fmt.Errorf("%w: boundary stage is required", ErrInvalidConfig)
	case b.InternalAccountID == "":
		return fmt.Errorf("%w: internal account id is required", ErrInvalidConfig)
	case b.ExternalAccountID == "":
		return fmt.Errorf("%w: external account id is required", ErrInvalidConfig)
	case b.RestAPIID == "":
		return fmt.Errorf("%w: rest api id is required", ErrInvalidConfig)
	case b.Method == "":
		return fmt.Errorf("%w: boundary method is required", ErrInvalidConfig)
	case !strings.HasPrefix(b.Path, "/"):
		return fmt.Errorf("%w: boundary path must start with /", ErrInvalidConfig)
	}
	return nil
}

// ValidateDomain — проверка настроек внутреннего обработчика.
// Граница проверяется только если включена её локальная эмуляция.
func (c *Config) ValidateDomain() error {
	if c.Boundary.Enforce {
		if err := c.ValidateBoundary(); err != nil {
			return err
		}
		if len(c.Boundary.Keys) == 0 {
			return fmt.Errorf("%w: boundary enforcement requires at least one key", ErrInvalidConfig)
		}
	}
	return validateIDs(c.IDs)
}

func validateIDs(ids IDs) error {
	switch ids.Version {
	case "v4", "v7":
		return nil
	default:
		return fmt.Errorf("%w: unsupported id version %q", ErrInvalidConfig, ids.Version)
	}
}
