// Package storage hides the object store behind a small interface so the
// platform can run against Aliyun OSS, MinIO or any S3 compatible service.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"studybuddy/config"
)

var ErrObjectNotFound = errors.New("object not found")

type Store interface {
	// Put 上传对象
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	// Get 下载为流, 调用方负责 Close
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// Delete 删除对象
	Delete(ctx context.Context, bucket, key string) error
}

// New 根据配置选择驱动
func New(cfg *config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverOss:
		return NewOssStore(cfg), nil
	case config.StorageDriverMinio:
		return NewMinioStore(cfg)
	case config.StorageDriverS3:
		return NewS3Store(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
