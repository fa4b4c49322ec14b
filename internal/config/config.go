package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Census Census `yaml:"census" mapstructure:"census"`
	Sites  Sites  `yaml:"sites" mapstructure:"sites"`
	Study  Study  `yaml:"study" mapstructure:"study"`
	Render Render `yaml:"render" mapstructure:"render"`
	Serve  Serve  `yaml:"serve" mapstructure:"serve"`
	Log    Log    `yaml:"log" mapstructure:"log"`
}

// Census configures the ACS and TIGER sources.
type Census struct {
	APIKey       string `yaml:"api_key" mapstructure:"api_key"`
	Year         int    `yaml:"year" mapstructure:"year"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	TIGERBaseURL string `yaml:"tiger_base_url" mapstructure:"tiger_base_url"`
	TempDir      string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// Sites configures the NYSDEC remediation site source.
type Sites struct {
	CSVURL string `yaml:"csv_url" mapstructure:"csv_url"`
}

// Study pins the geographic study area.
type Study struct {
	StateFIPS   string   `yaml:"state_fips" mapstructure:"state_fips"`
	CountyFIPS  []string `yaml:"county_fips" mapstructure:"county_fips"`
	CountyNames []string `yaml:"county_names" mapstructure:"county_names"`
}

// Render configures artifact output.
type Render struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Title     string `yaml:"title" mapstructure:"title"`
}

// Serve configures the artifact preview server.
type Serve struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EJATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. api_key defaults empty so the env binding is visible
	// to Unmarshal.
	v.SetDefault("census.api_key", "")
	v.SetDefault("census.year", 2023)
	v.SetDefault("census.base_url", "https://api.census.gov/data")
	v.SetDefault("census.tiger_base_url", "https://www2.census.gov/geo/tiger")
	v.SetDefault("census.temp_dir", "/tmp/ejatlas")
	v.SetDefault("sites.csv_url", "https://data.ny.gov/api/views/c6ci-rzpg/rows.csv?accessType=DOWNLOAD")
	v.SetDefault("study.state_fips", "36")
	v.SetDefault("study.county_fips", []string{"001", "083", "093"})
	v.SetDefault("study.county_names", []string{"Albany", "Rensselaer", "Schenectady"})
	v.SetDefault("render.output_dir", "out")
	v.SetDefault("render.title", "Capital District Environmental Justice Atlas")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg Log) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
