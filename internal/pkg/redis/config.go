package redis

import (
	"errors"
	"time"

	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

// Config configures a universal client: one address is a single node, a master name
// selects sentinel mode and several addresses without one select cluster mode.
type Config struct {
	Addrs      []string
	MasterName string
	Username   string
	Password   string
	DB         int

	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a single-node configuration for localhost
func DefaultConfig() *Config {
	return &Config{
		Addrs:        []string{"localhost:6379"},
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// FromConf builds a Config from the application redis section, keeping the default
// pool and timeout settings.
func FromConf(c conf.RedisConfig) *Config {
	cfg := DefaultConfig()
	cfg.Addrs = append([]string(nil), c.Addrs...)
	cfg.MasterName = c.MasterName
	cfg.Username = c.Username
	cfg.Password = c.Password
	cfg.DB = c.DB
	return cfg
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if len(c.Addrs) == 0 {
		return errors.New("redis: at least one address is required")
	}
	if c.DB < 0 || c.DB > 15 {
		return errors.New("redis: db must be between 0 and 15")
	}
	if c.PoolSize <= 0 {
		return errors.New("redis: pool_size must be > 0")
	}
	if c.DialTimeout <= 0 {
		return errors.New("redis: dial_timeout must be > 0")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("redis: read and write timeouts must be >= 0")
	}
	return nil
}
