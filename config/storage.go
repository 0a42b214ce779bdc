package config

import "fmt"

const (
	StorageDriverOss   = "oss"
	StorageDriverMinio = "minio"
	StorageDriverS3    = "s3"
)

// Storage 对象存储配置
type Storage struct {
	Driver          string `json:"driver" yaml:"driver"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	UseSSL          bool   `json:"use_ssl" yaml:"use_ssl"`
	// PublicBaseURL prefixes public object URLs, e.g. https://api.studybuddy.app
	PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	// Buckets maps a logical container name to the physical bucket.
	Buckets map[string]string `json:"buckets" yaml:"buckets"`
	// MaxUploadBytes caps a single upload.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

func (s *Storage) applyDefaults() {
	if s.Driver == "" {
		s.Driver = StorageDriverOss
	}
	if s.PublicBaseURL == "" {
		s.PublicBaseURL = "http://127.0.0.1:8080"
	}
	if len(s.Buckets) == 0 {
		s.Buckets = map[string]string{"study_notes": "study-notes"}
	}
	if s.MaxUploadBytes == 0 {
		s.MaxUploadBytes = 5 << 20
	}
}

// Bucket resolves a logical container name.
func (s *Storage) Bucket(container string) (string, error) {
	b, ok := s.Buckets[container]
	if !ok || b == "" {
		return "", fmt.Errorf("unknown storage container %q", container)
	}
	return b, nil
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
