package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	subjectKey      = "notes:subjects"
	subjectExpireAt = 10 * time.Minute
)

var _ ISubjectStorage = (*SubjectStorage)(nil)

type ISubjectStorage interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, subjects []string) error
	Invalidate(ctx context.Context) error
}

// SubjectStorage 科目列表缓存, 笔记新增/删除时失效
type SubjectStorage struct {
	redis *redis.Client
}

func NewSubjectStorage(rds *redis.Client) *SubjectStorage {
	return &SubjectStorage{redis: rds}
}

// Get 命中返回 (subjects, true)
func (s *SubjectStorage) Get(ctx context.Context) ([]string, bool) {
	raw, err := s.redis.Get(ctx, subjectKey).Bytes()
	if err != nil {
		return nil, false
	}
	var subjects []string
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil, false
	}
	return subjects, true
}

func (s *SubjectStorage) Set(ctx context.Context, subjects []string) error {
	raw, err := json.Marshal(subjects)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, subjectKey, raw, subjectExpireAt).Err()
}

func (s *SubjectStorage) Invalidate(ctx context.Context) error {
	err := s.redis.Del(ctx, subjectKey).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
