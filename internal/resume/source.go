package resume

import (
	"context"
	"fmt"
	"os"

	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

// Source fetches the raw resume document. The returned name carries the extension
// used to pick a loader.
type Source interface {
	Fetch(ctx context.Context) (data []byte, name string, err error)
}

// ObjectReader is the part of the MinIO client a MinIOSource needs
type ObjectReader interface {
	ReadObject(ctx context.Context, bucketName, objectName string) ([]byte, error)
}

// FileSource reads the document bundled with the deployment
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, s.Path, err
	}
	return data, s.Path, nil
}

// MinIOSource reads the document from object storage
type MinIOSource struct {
	Client ObjectReader
	Bucket string
	Object string
}

func (s *MinIOSource) Fetch(ctx context.Context) ([]byte, string, error) {
	data, err := s.Client.ReadObject(ctx, s.Bucket, s.Object)
	if err != nil {
		return nil, s.Object, err
	}
	return data, s.Object, nil
}

// NewSource builds the source selected by cfg. objects may be nil unless the
// minio source is configured.
func NewSource(cfg conf.ResumeConfig, objects ObjectReader) (Source, error) {
	switch cfg.Source {
	case conf.SourceFile, "":
		return &FileSource{Path: cfg.Path}, nil
	case conf.SourceMinIO:
		if objects == nil {
			return nil, fmt.Errorf("resume source %q requires an object storage client", cfg.Source)
		}
		return &MinIOSource{Client: objects, Bucket: cfg.Bucket, Object: cfg.Object}, nil
	default:
		return nil, fmt.Errorf("unsupported resume source: %s", cfg.Source)
	}
}
