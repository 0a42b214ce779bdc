package storage

import (
	"context"
	"errors"
	"io"
	"net/http"

	"studybuddy/config"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

type OssStore struct {
	Client *oss.Client
}

var _ Store = (*OssStore)(nil)

func NewOssStore(cfg *config.Storage) *OssStore {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &OssStore{Client: oss.NewClient(ossCfg)}
}

func (s *OssStore) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:        oss.Ptr(bucket),
		Key:           oss.Ptr(key),
		Body:          body,
		ContentLength: oss.Ptr(size),
		ContentType:   oss.Ptr(contentType),
	})
	return err
}

func (s *OssStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(key),
	})
	if err != nil {
		return nil, ossErr(err)
	}
	return out.Body, nil
}

func (s *OssStore) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(bucket),
		Key:    oss.Ptr(key),
	})
	return ossErr(err)
}

func ossErr(err error) error {
	var se *oss.ServiceError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return ErrObjectNotFound
	}
	return err
}
