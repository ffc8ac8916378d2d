package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultOutputPath is the output workbook written when none is given.
const DefaultOutputPath = "Company Job Titles - Mapped.with_work_values.xlsx"

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	FTP       FTPConfig       `yaml:"ftp" mapstructure:"ftp"`
	Input     InputConfig     `yaml:"input" mapstructure:"input"`
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HTTPConfig configures downloads of remote reference files.
type HTTPConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// FTPConfig configures ftp:// reference sources.
type FTPConfig struct {
	TimeoutSecs int  `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DisableEPSV bool `yaml:"disable_epsv" mapstructure:"disable_epsv"`
}

// InputConfig configures reading the job-title workbook.
type InputConfig struct {
	Sheet    string `yaml:"sheet" mapstructure:"sheet"`
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}

// ReferenceConfig configures the O*NET Work Values source.
type ReferenceConfig struct {
	Source string `yaml:"source" mapstructure:"source"`
	Sheet  string `yaml:"sheet" mapstructure:"sheet"`
}

// OutputConfig configures the enriched workbook.
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	Sheet       string `yaml:"sheet" mapstructure:"sheet"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WORKVALUES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("http.timeout_secs", 60)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.user_agent", "workvalues-cli/1.0")
	v.SetDefault("ftp.timeout_secs", 30)
	v.SetDefault("ftp.disable_epsv", false)
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("reference.source", "")
	v.SetDefault("reference.sheet", "")
	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.max_attempts", 10)
	v.SetDefault("output.sheet", "Sheet1")

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

// Validate checks value ranges and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, "log.format must be console or json")
	}
	if c.HTTP.TimeoutSecs <= 0 {
		errs = append(errs, "http.timeout_secs must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		errs = append(errs, "http.max_retries must be >= 0")
	}
	if c.FTP.TimeoutSecs <= 0 {
		errs = append(errs, "ftp.timeout_secs must be > 0")
	}
	if c.Output.MaxAttempts < 1 || c.Output.MaxAttempts > 100 {
		errs = append(errs, "output.max_attempts must be between 1 and 100")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
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
