package minio

import (
	"errors"

	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

// Config represents the configuration for the MinIO client
type Config struct {
	// Endpoint is the S3-compatible object storage endpoint, e.g. "localhost:9000"
	Endpoint string

	AccessKeyID     string
	SecretAccessKey string

	// Region is optional, e.g. "us-east-1"
	Region string

	// UseSSL determines whether to use HTTPS (true) or HTTP (false)
	UseSSL bool
}

// FromConf maps the application minio section onto a client Config
func FromConf(c conf.MinIOConfig) *Config {
	return &Config{
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKey,
		SecretAccessKey: c.SecretKey,
		Region:          c.Region,
		UseSSL:          c.UseSSL,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("minio: endpoint is required")
	}
	if c.AccessKeyID == "" {
		return errors.New("minio: access key ID is required")
	}
	if c.SecretAccessKey == "" {
		return errors.New("minio: secret access key is required")
	}
	return nil
}
