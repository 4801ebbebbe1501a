package data

import (
	"fmt"

	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/minio"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/redis"
	"go.uber.org/zap"
)

// Data holds the external clients. Each one is nil unless the configuration needs it:
// MinIO for the minio resume source, Redis for the redis rate limit backend.
type Data struct {
	MinIOClient *minio.Client
	RedisClient *redis.Client
	Logger      *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	d := &Data{Logger: log}

	if config.UsesMinIO() {
		client, err := minio.NewClient(minio.FromConf(config.MinIO), log.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init minio: %w", err)
		}
		d.MinIOClient = client
	}

	if config.UsesRedis() {
		client, err := redis.New(redis.FromConf(config.Redis), log)
		if err != nil {
			d.close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		d.RedisClient = client
	}

	cleanup := func() {
		log.Info("cleaning up data resources")
		d.close()
	}

	return d, cleanup, nil
}

func (d *Data) close() {
	if d.MinIOClient != nil {
		if err := d.MinIOClient.Close(); err != nil {
			d.Logger.Warn("failed to close minio client", zap.Error(err))
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			d.Logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
