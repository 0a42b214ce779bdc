package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studybuddy/dao"
	"studybuddy/dao/cache"
	"studybuddy/models"
	"studybuddy/pkg/log"
	"studybuddy/pkg/storageref"
	"studybuddy/types"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 清理文件时的并发数
const purgeWorkers = 4

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	Users(ctx context.Context) ([]*types.AdminUser, error)
	// ToggleRole user <-> admin
	ToggleRole(ctx context.Context, userID string) (string, error)
	// PurgeNotes 删除用户全部笔记, 文件尽力删除, 失败记入 warnings
	PurgeNotes(ctx context.Context, userID string) (*types.PurgeNotesResponse, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type AdminService struct {
	ProfileDAO     *dao.ProfileDAO
	NoteDAO        *dao.NoteDAO
	SubjectCache   cache.ISubjectStorage
	StorageService IStorageService
}

func (s *AdminService) Users(ctx context.Context) ([]*types.AdminUser, error) {
	profiles, err := s.ProfileDAO.List(ctx)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(profiles))
	for _, p := range profiles {
		emails = append(emails, p.Email)
	}
	counts, err := s.NoteDAO.CountByUserEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	users := make([]*types.AdminUser, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, &types.AdminUser{
			ProfileResponse: *ToProfileResponse(p),
			ResourceCount:   counts[p.Email],
		})
	}
	return users, nil
}

func (s *AdminService) ToggleRole(ctx context.Context, userID string) (string, error) {
	profile, err := s.ProfileDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	role := models.RoleAdmin
	if profile.IsAdmin() {
		role = models.RoleUser
	}
	if err := s.ProfileDAO.UpdateRole(ctx, userID, role); err != nil {
		return "", err
	}
	log.L.Info("role changed", zap.String("user_id", userID), zap.String("role", role))
	return role, nil
}

func (s *AdminService) PurgeNotes(ctx context.Context, userID string) (*types.PurgeNotesResponse, error) {
	profile, err := s.ProfileDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// 先删文件再删记录, 与单条删除顺序一致
	notes, err := s.NoteDAO.FindByUserEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	warnings := s.removeFiles(ctx, profile.ID, notes)

	deleted, err := s.NoteDAO.DeleteByUserEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	s.invalidateSubjects(ctx)

	// 列表之后新建的笔记, 记录已删除, 文件补删
	listed := make(map[string]bool, len(notes))
	for _, n := range notes {
		listed[n.ID] = true
	}
	var late []*models.Note
	for _, n := range deleted {
		if !listed[n.ID] {
			late = append(late, n)
		}
	}
	warnings = append(warnings, s.removeFiles(ctx, profile.ID, late)...)

	return &types.PurgeNotesResponse{Deleted: len(deleted), Warnings: warnings}, nil
}

func (s *AdminService) removeFiles(ctx context.Context, ownerID string, notes []*models.Note) []string {
	p := pool.NewWithResults[string]().WithMaxGoroutines(purgeWorkers)
	for _, n := range notes {
		if n.FileURL == nil || *n.FileURL == "" {
			continue
		}
		fileURL := *n.FileURL
		p.Go(func() string {
			return s.removeFile(ctx, ownerID, fileURL)
		})
	}

	var warnings []string
	for _, w := range p.Wait() {
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// removeFile 只删除 ownerID 文件夹下的对象, 返回空串表示成功
func (s *AdminService) removeFile(ctx context.Context, ownerID, fileURL string) string {
	ref, err := storageref.Parse(fileURL)
	if err != nil {
		return fmt.Sprintf("%s: %v", fileURL, err)
	}
	if ownerID == "" || OwnerSegment(strings.Trim(ref.Path, "/")) != ownerID {
		log.L.Warn("skip file outside owner folder", zap.String("file_url", fileURL), zap.String("owner_id", ownerID))
		return fmt.Sprintf("%s: %v", fileURL, ErrForbidden)
	}
	if err := s.StorageService.Purge(ctx, ref.Container, ref.Path); err != nil {
		log.L.Warn("purge file", zap.String("file_url", fileURL), zap.Error(err))
		return fmt.Sprintf("%s: %v", fileURL, err)
	}
	return ""
}

func (s *AdminService) invalidateSubjects(ctx context.Context) {
	if err := s.SubjectCache.Invalidate(ctx); err != nil {
		log.L.Warn("invalidate subject cache", zap.Error(err))
	}
}

func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	profile, err := s.ProfileDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.IsAdmin(), nil
}
