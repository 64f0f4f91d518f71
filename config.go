package session

import (
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// Config carries the two opaque provider settings plus the local HTTP
// surface. The provider settings have no defaults: a process that
// cannot reach its identity provider must fail to start.
type Config struct {
	ServiceURL string `env:"AUTH_SERVICE_URL" json:"service_url"`
	ServiceKey string `env:"AUTH_SERVICE_KEY" json:"-"`
	ListenAddr string `env:"HTTP_LISTEN_ADDR" envDefault:":3000" json:"listen_addr"`
	Debug      bool   `env:"DEBUG" envDefault:"false" json:"debug"`
}

// ConfigFromEnv loads and validates configuration from the process
// environment.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "unable to parse environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate runs validation rules
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ServiceURL, validation.Required, is.URL),
		validation.Field(&c.ServiceKey, validation.Required),
		validation.Field(&c.ListenAddr, validation.Required),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
			WithCode(goerrors.CodeBadRequest)
	}
	return nil
}
