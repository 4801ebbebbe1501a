package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_UPSTREAM_API_KEY.
const EnvPrefix = "PORTFOLIO"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Resume    ResumeConfig    `mapstructure:"resume"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // gin mode: debug, release, test
	Diagnostics  bool          `mapstructure:"diagnostics"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type CORSConfig struct {
	AllowOrigin  string `mapstructure:"allow_origin"`
	AllowMethods string `mapstructure:"allow_methods"`
	AllowHeaders string `mapstructure:"allow_headers"`
}

// ChatConfig holds the request defaults and the prompt material appended to the system message.
type ChatConfig struct {
	Route              string  `mapstructure:"route"`
	DefaultModel       string  `mapstructure:"default_model"`
	DefaultMaxTokens   int     `mapstructure:"default_max_tokens"`
	DefaultTemperature float64 `mapstructure:"default_temperature"`
	OwnerName          string  `mapstructure:"owner_name"`
	Instructions       string  `mapstructure:"instructions"`
	FallbackMessage    string  `mapstructure:"fallback_message"`
	MaxBodyBytes       int64   `mapstructure:"max_body_bytes"`
}

type UpstreamConfig struct {
	Driver  string            `mapstructure:"driver"` // http, sdk
	BaseURL string            `mapstructure:"base_url"`
	APIKey  string            `mapstructure:"api_key"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

type ResumeConfig struct {
	Source string `mapstructure:"source"` // file, minio
	Path   string `mapstructure:"path"`
	Bucket string `mapstructure:"bucket"`
	Object string `mapstructure:"object"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

type RedisConfig struct {
	Addrs      []string `mapstructure:"addrs"`
	MasterName string   `mapstructure:"master_name"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	DB         int      `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Backend       string `mapstructure:"backend"` // memory, redis
	MaxRequests   int    `mapstructure:"max_requests"`
	WindowSeconds int    `mapstructure:"window_seconds"`
}

const (
	DriverHTTP = "http"
	DriverSDK  = "sdk"

	SourceFile  = "file"
	SourceMinIO = "minio"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LoadConfig reads the optional YAML file at path, applies PORTFOLIO_* environment overrides
// on top of the built-in defaults and validates the result. An empty path means env only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when neither a file nor env overrides are present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.diagnostics", false)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.enablecaller", true)
	v.SetDefault("log.enablestacktrace", true)
	v.SetDefault("log.file.filename", "logs/portfolio-chat.log")
	v.SetDefault("log.file.maxsize", 100)
	v.SetDefault("log.file.maxage", 30)
	v.SetDefault("log.file.maxbackups", 10)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("cors.allow_origin", "*")
	v.SetDefault("cors.allow_methods", "POST, OPTIONS")
	v.SetDefault("cors.allow_headers", "Content-Type")

	v.SetDefault("chat.route", "/api/chat")
	v.SetDefault("chat.default_model", DefaultModel)
	v.SetDefault("chat.default_max_tokens", 300)
	v.SetDefault("chat.default_temperature", 0.6)
	v.SetDefault("chat.owner_name", "")
	v.SetDefault("chat.instructions", "")
	v.SetDefault("chat.fallback_message", "")
	v.SetDefault("chat.max_body_bytes", 1<<20)

	v.SetDefault("upstream.driver", DriverHTTP)
	v.SetDefault("upstream.base_url", DefaultBaseURL)
	v.SetDefault("upstream.api_key", "")
	v.SetDefault("upstream.timeout", 0)

	v.SetDefault("resume.source", SourceFile)
	v.SetDefault("resume.path", "public/cv.pdf")
	v.SetDefault("resume.bucket", "")
	v.SetDefault("resume.object", "")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.use_ssl", true)

	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.backend", BackendMemory)
	v.SetDefault("rate_limit.max_requests", 20)
	v.SetDefault("rate_limit.window_seconds", 60)
}

const (
	DefaultModel   = "deepseek-r1-distill-llama-70b"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

var (
	ErrInvalidPort      = errors.New("server port must be between 1 and 65535")
	ErrInvalidMode      = errors.New("server mode must be 'debug', 'release' or 'test'")
	ErrInvalidDriver    = errors.New("upstream driver must be 'http' or 'sdk'")
	ErrMissingBaseURL   = errors.New("upstream base_url is required")
	ErrInvalidSource    = errors.New("resume source must be 'file' or 'minio'")
	ErrMissingObject    = errors.New("resume bucket and object are required for the minio source")
	ErrMissingEndpoint  = errors.New("minio endpoint is required for the minio source")
	ErrInvalidBackend   = errors.New("rate_limit backend must be 'memory' or 'redis'")
	ErrInvalidRateLimit = errors.New("rate_limit max_requests and window_seconds must be positive")
	ErrMissingRedisAddr = errors.New("redis addrs are required for the redis rate limit backend")
)

// Validate checks cross-field constraints. The API key is checked when the upstream
// provider is built.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return ErrInvalidMode
	}

	switch c.Upstream.Driver {
	case DriverHTTP, DriverSDK:
	default:
		return ErrInvalidDriver
	}
	if c.Upstream.BaseURL == "" {
		return ErrMissingBaseURL
	}

	switch c.Resume.Source {
	case SourceFile:
	case SourceMinIO:
		if c.Resume.Bucket == "" || c.Resume.Object == "" {
			return ErrMissingObject
		}
		if c.MinIO.Endpoint == "" {
			return ErrMissingEndpoint
		}
	default:
		return ErrInvalidSource
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowSeconds <= 0 {
			return ErrInvalidRateLimit
		}
		switch c.RateLimit.Backend {
		case BackendMemory:
		case BackendRedis:
			if len(c.Redis.Addrs) == 0 {
				return ErrMissingRedisAddr
			}
		default:
			return ErrInvalidBackend
		}
	}

	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UsesMinIO reports whether a MinIO client has to be built.
func (c *Config) UsesMinIO() bool {
	return c.Resume.Source == SourceMinIO
}

// UsesRedis reports whether a Redis client has to be built.
func (c *Config) UsesRedis() bool {
	return c.RateLimit.Enabled && c.RateLimit.Backend == BackendRedis
}
