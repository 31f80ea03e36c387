package config

import "time"

// Config is the root application configuration.
type Config struct {
	Paths PathsConfig `yaml:"paths"`
	API   APIConfig   `yaml:"api"`
	Log   LogConfig   `yaml:"log"`
}

// PathsConfig holds the locations of inputs and outputs on disk.
type PathsConfig struct {
	OutputDir     string `yaml:"output_dir"     env:"MIGRATE_OUTPUT_DIR"     env-default:"./output"`
	SecretsFile   string `yaml:"secrets_file"   env:"MIGRATE_SECRETS_FILE"   env-default:"secrets.json"`
	LanguagesFile string `yaml:"languages_file" env:"MIGRATE_LANGUAGES_FILE" env-default:"languages.csv"`
}

// APIConfig holds settings for the legacy project API call.
type APIConfig struct {
	Timeout   time.Duration `yaml:"timeout"    env:"API_TIMEOUT"    env-default:"60s"`
	UserAgent string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"redcap-mlm-migrate"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
