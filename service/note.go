package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studybuddy/config"
	"studybuddy/dao"
	"studybuddy/dao/cache"
	"studybuddy/models"
	"studybuddy/pkg/log"
	"studybuddy/pkg/snowflake"
	"studybuddy/pkg/storageref"
	"studybuddy/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ INoteService = (*NoteService)(nil)

type INoteService interface {
	List(ctx context.Context) ([]*models.Note, error)
	ListByOwner(ctx context.Context, email string) ([]*models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	// Create file_url 必须指向调用者自己文件夹下的对象
	Create(ctx context.Context, userID, email string, req *types.CreateNoteRequest) (*models.Note, error)
	// Delete 只有上传者或管理员可以删除
	Delete(ctx context.Context, userID string, noteID string) error
	Subjects(ctx context.Context) ([]string, error)
}

type NoteService struct {
	NoteDAO      *dao.NoteDAO
	ProfileDAO   *dao.ProfileDAO
	SubjectCache cache.ISubjectStorage
	Storage      *config.Storage
}

func (s *NoteService) List(ctx context.Context) ([]*models.Note, error) {
	return s.NoteDAO.ListAll(ctx)
}

func (s *NoteService) ListByOwner(ctx context.Context, email string) ([]*models.Note, error) {
	return s.NoteDAO.FindByUserEmail(ctx, email)
}

func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.NoteDAO.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	return note, err
}

func (s *NoteService) Create(ctx context.Context, userID, email string, req *types.CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	subject := strings.TrimSpace(req.Subject)
	if title == "" || subject == "" {
		return nil, fmt.Errorf("%w: 标题和科目不能为空", ErrInvalidNote)
	}

	var fileURL *string
	if req.FileURL != nil && strings.TrimSpace(*req.FileURL) != "" {
		u := strings.TrimSpace(*req.FileURL)
		if err := s.checkFileRef(userID, u); err != nil {
			return nil, err
		}
		fileURL = &u
	}

	note := &models.Note{
		ID:        snowflake.GenString(),
		Title:     title,
		Subject:   subject,
		UserEmail: email,
		FileURL:   fileURL,
		CreatedAt: time.Now(),
	}
	if err := s.NoteDAO.Create(ctx, note); err != nil {
		return nil, err
	}
	s.invalidateSubjects(ctx)
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID string, noteID string) error {
	note, err := s.Get(ctx, noteID)
	if err != nil {
		return err
	}
	caller, err := s.ProfileDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !CanModifyNote(caller, note) {
		return ErrForbidden
	}

	deleted, err := s.NoteDAO.Delete(ctx, noteID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	s.invalidateSubjects(ctx)
	return nil
}

// Subjects 先查缓存, 未命中回源数据库
func (s *NoteService) Subjects(ctx context.Context) ([]string, error) {
	if subjects, ok := s.SubjectCache.Get(ctx); ok {
		return subjects, nil
	}
	subjects, err := s.NoteDAO.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.SubjectCache.Set(ctx, subjects); err != nil {
		log.L.Warn("cache subjects", zap.Error(err))
	}
	return subjects, nil
}

// checkFileRef 引用必须可解析, 容器已配置, 且对象位于 userID 的文件夹下
func (s *NoteService) checkFileRef(userID, fileURL string) error {
	ref, err := storageref.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFileRef, err)
	}
	if _, err := s.Storage.Bucket(ref.Container); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFileRef, err)
	}
	key, err := CleanObjectPath(ref.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFileRef, err)
	}
	if userID == "" || OwnerSegment(key) != userID {
		return fmt.Errorf("%w: 文件不在当前用户的目录下", ErrInvalidFileRef)
	}
	return nil
}

func (s *NoteService) invalidateSubjects(ctx context.Context) {
	if err := s.SubjectCache.Invalidate(ctx); err != nil {
		log.L.Warn("invalidate subject cache", zap.Error(err))
	}
}

// CanModifyNote 上传者本人或管理员
func CanModifyNote(caller *models.Profile, note *models.Note) bool {
	if caller == nil || note == nil {
		return false
	}
	return caller.IsAdmin() || strings.EqualFold(caller.Email, note.UserEmail)
}
