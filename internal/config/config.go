package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Emma    *emmaConfig
	Service *svcConfig
}

// emmaConfig holds the credentials and endpoint of the vendor API.
type emmaConfig struct {
	BaseURL      string `envconfig:"EMMA_API_BASE_URL" default:"https://api.emma.ms/external"`
	ClientID     string `envconfig:"EMMA_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"EMMA_CLIENT_SECRET" default:""`
}

type svcConfig struct {
	Address        string `envconfig:"EMMA_PROXY_ADDRESS" default:":8080"`
	MetricsAddress string `envconfig:"EMMA_PROXY_METRICS_ADDRESS" default:":8081"`
	BaseUrl        string `envconfig:"EMMA_PROXY_BASE_URL" default:"http://localhost:8080"`
	LogLevel       string `envconfig:"EMMA_PROXY_LOG_LEVEL" default:"info"`

	// RefreshMarginSeconds is subtracted from the token lifetime when
	// scheduling the next refresh.
	RefreshMarginSeconds int `envconfig:"EMMA_PROXY_TOKEN_REFRESH_MARGIN_SECONDS" default:"25"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// Validate rejects configurations the proxy cannot start with.
func (c *Config) Validate() error {
	if c.Emma.ClientID == "" || c.Emma.ClientSecret == "" {
		return fmt.Errorf("missing vendor credentials: EMMA_CLIENT_ID and EMMA_CLIENT_SECRET must be set")
	}
	if c.Emma.BaseURL == "" {
		return fmt.Errorf("missing vendor endpoint: EMMA_API_BASE_URL must be set")
	}
	return nil
}
