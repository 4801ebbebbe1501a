package minio

import (
	"context"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Client wraps the MinIO client
type Client struct {
	client *minio.Client
	config *Config
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new MinIO client. No request is made until first use.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, &Error{Op: "NewClient", Err: ErrInvalidArgument}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &Error{Op: "NewClient", Err: err}
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}

	minioClient, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, &Error{Op: "NewClient", Err: err}
	}

	if logger != nil {
		logger.Info("minio client initialized",
			zap.String("endpoint", cfg.Endpoint),
			zap.Bool("use_ssl", cfg.UseSSL),
		)
	}

	return &Client{
		client: minioClient,
		config: cfg,
		logger: logger,
	}, nil
}

// ReadObject downloads the whole object into memory
func (c *Client) ReadObject(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClientClosed
	}

	obj, err := c.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, wrapError("GetObject", bucketName, objectName, err)
	}
	defer obj.Close()

	// GetObject is lazy; missing objects only surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, wrapError("GetObject", bucketName, objectName, err)
	}
	return data, nil
}

// Close marks the client closed
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.logger != nil {
		c.logger.Info("minio client closed")
	}
	return nil
}
