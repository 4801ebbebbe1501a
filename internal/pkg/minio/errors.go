package minio

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

var (
	ErrObjectNotFound  = errors.New("minio: object not found")
	ErrBucketNotFound  = errors.New("minio: bucket not found")
	ErrClientClosed    = errors.New("minio: client is closed")
	ErrInvalidArgument = errors.New("minio: invalid argument")
)

// Error represents a MinIO error with the operation and object it concerns
type Error struct {
	Op     string
	Bucket string
	Object string
	Err    error
}

func (e *Error) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("minio: %s failed for bucket=%s, object=%s: %v", e.Op, e.Bucket, e.Object, e.Err)
	}
	return fmt.Sprintf("minio: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError translates S3 error codes into the package sentinels
func wrapError(op, bucket, object string, err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		err = fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	case "NoSuchBucket":
		err = fmt.Errorf("%w: %v", ErrBucketNotFound, err)
	}

	return &Error{Op: op, Bucket: bucket, Object: object, Err: err}
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrBucketNotFound)
}
