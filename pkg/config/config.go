package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"EMPLOYEE_GW_APP_ENV" default:"dev"`
	Port         string   `envconfig:"EMPLOYEE_GW_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"EMPLOYEE_GW_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"EMPLOYEE_GW_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"EMPLOYEE_GW_APP_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the employee provider and bounds the
// retry behavior applied to every call against it.
type UpstreamConfig struct {
	BaseURL     string        `envconfig:"EMPLOYEE_GW_UPSTREAM_BASE_URL" default:"http://localhost:8112/api/v1/employee"`
	MaxAttempts int           `envconfig:"EMPLOYEE_GW_UPSTREAM_MAX_ATTEMPTS" default:"3"`
	RetryDelay  time.Duration `envconfig:"EMPLOYEE_GW_UPSTREAM_RETRY_DELAY" default:"1s"`
	HTTPTimeout time.Duration `envconfig:"EMPLOYEE_GW_UPSTREAM_HTTP_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", EnvUpstreamBaseURL)
	}
	if u.MaxAttempts < 1 {
		return fmt.Errorf("%s must be at least 1", EnvUpstreamMaxAttempts)
	}
	if u.RetryDelay < 0 {
		return fmt.Errorf("%s must not be negative", EnvUpstreamRetryDelay)
	}
	if u.HTTPTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvUpstreamHTTPTimeout)
	}
	return nil
}
