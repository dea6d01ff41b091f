package sdds

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rtsoliday/sddsTest-sub000/internal/backend"
	"github.com/rtsoliday/sddsTest-sub000/internal/dtype"
	"github.com/rtsoliday/sddsTest-sub000/internal/logging"
)

// Config is the file form of the dataset options.
type Config struct {
	BufferSize        int       `yaml:"buffer_size"`
	Compression       string    `yaml:"compression"`
	CompressionLevel  int       `yaml:"compression_level"`
	FixedRowIncrement int64     `yaml:"fixed_row_increment"`
	AutoRecover       bool      `yaml:"auto_recover"`
	LongDouble64      bool      `yaml:"longdouble_64bits"`
	ByteOrder         string    `yaml:"byte_order"`
	SeekRetry         SeekRetry `yaml:"seek_retry"`
	Logging           Logging   `yaml:"logging"`
}

// SeekRetry configures retried positional seeks.
type SeekRetry struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

// Logging configures the dataset logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() *Config {
	return &Config{
		BufferSize: DefaultBufferSize,
		SeekRetry: SeekRetry{
			Attempts: backend.DefaultSeekAttempts,
			Delay:    backend.DefaultSeekDelay,
		},
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data)
}

// WithConfig applies every setting in cfg. Options given after it override
// individual settings. An invalid value fails Create or Open.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		WithBufferSize(cfg.BufferSize)(o)
		if cfg.Compression != "" {
			kind, err := backend.ParseKind(cfg.Compression)
			if err != nil {
				o.err = err
				return
			}
			WithCompression(kind, cfg.CompressionLevel)(o)
		}
		if cfg.FixedRowIncrement > 0 {
			WithFixedRowCount(cfg.FixedRowIncrement)(o)
		}
		if cfg.AutoRecover {
			WithAutoRecover()(o)
		}
		if cfg.LongDouble64 {
			WithExtended(dtype.Extended64)(o)
		}
		if cfg.ByteOrder != "" {
			order, err := ParseByteOrder(cfg.ByteOrder)
			if err != nil {
				o.err = err
				return
			}
			WithByteOrder(order)(o)
		}
		WithSeekRetry(cfg.SeekRetry.Attempts, cfg.SeekRetry.Delay)(o)

		format := logging.FormatText
		if cfg.Logging.Format == "json" {
			format = logging.FormatJSON
		}
		if cfg.Logging.Level != "" {
			WithLogger(logging.New(logging.ParseLevel(cfg.Logging.Level), format, os.Stderr))(o)
		}
	}
}
