package service

import (
	"context"
	"errors"

	"studybuddy/dao"

	"gorm.io/gorm"
)

var _ IUpvoteService = (*UpvoteService)(nil)

type IUpvoteService interface {
	// Upvote 每个用户对每篇笔记至多生效一次, 返回本次是否生效
	Upvote(ctx context.Context, userID string, noteID string) (bool, error)
	HasUpvoted(ctx context.Context, userID string, noteID string) (bool, error)
}

type UpvoteService struct {
	UpvoteDAO *dao.UpvoteDAO
}

func (s *UpvoteService) Upvote(ctx context.Context, userID string, noteID string) (bool, error) {
	applied, err := s.UpvoteDAO.IncrementIfAbsent(ctx, userID, noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNoteNotFound
	}
	return applied, err
}

func (s *UpvoteService) HasUpvoted(ctx context.Context, userID string, noteID string) (bool, error) {
	return s.UpvoteDAO.HasUpvoted(ctx, userID, noteID)
}
