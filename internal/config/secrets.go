package config

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/redcap-mlm-migrate/internal/domain"
)

// Secrets holds credentials for the legacy REDCap project. The JSON keys
// match the secrets.json layout the migration has always used.
type Secrets struct {
	APIToken string `json:"old_proj_api_token" yaml:"old_proj_api_token" env:"REDCAP_API_TOKEN"`
	URL      string `json:"old_proj_url"       yaml:"old_proj_url"       env:"REDCAP_API_URL"`
}

// LoadSecrets reads the secrets file at path, with REDCAP_API_TOKEN and
// REDCAP_API_URL taking priority. A missing file is accepted when both
// values come from the environment.
// Errors wrap domain.ErrConfiguration.
func LoadSecrets(path string) (Secrets, error) {
	var s Secrets

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return Secrets{}, domain.NewConfigurationError("read secrets %s: %v", path, err)
		}
	} else if err := cleanenv.ReadEnv(&s); err != nil {
		return Secrets{}, domain.NewConfigurationError("read secrets env: %v", err)
	}

	s.APIToken = strings.TrimSpace(s.APIToken)
	s.URL = strings.TrimSpace(s.URL)

	if err := s.Validate(); err != nil {
		return Secrets{}, domain.NewConfigurationError("secrets %s: %v - did you fill in your REDCap project's API token and URL?", path, err)
	}
	return s, nil
}

// Validate checks that both the token and an absolute http(s) URL are set.
func (s Secrets) Validate() error {
	if s.APIToken == "" {
		return errors.New("old_proj_api_token is empty")
	}
	if s.URL == "" {
		return errors.New("old_proj_url is empty")
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return errors.New("old_proj_url is not a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("old_proj_url must be an absolute http(s) URL")
	}
	return nil
}
