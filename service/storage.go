package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"studybuddy/config"
	"studybuddy/dao"
	"studybuddy/pkg/storage"
	"studybuddy/pkg/storageref"
	"studybuddy/types"

	"gorm.io/gorm"
)

const pdfContentType = "application/pdf"

var _ IStorageService = (*StorageService)(nil)

type IStorageService interface {
	// Upload 上传 PDF, 对象路径第一段必须是调用者ID
	Upload(ctx context.Context, userID, container, objectPath string, header *multipart.FileHeader) (*types.UploadResponse, error)
	// Remove 删除对象, 文件夹所有者或管理员
	Remove(ctx context.Context, userID, container, objectPath string) error
	// Purge 删除对象, 不做权限校验, 仅供管理端调用
	Purge(ctx context.Context, container, objectPath string) error
	// Open 公开读取
	Open(ctx context.Context, container, objectPath string) (io.ReadCloser, error)
}

type StorageService struct {
	Store      storage.Store
	Config     *config.Storage
	ProfileDAO *dao.ProfileDAO
}

func (s *StorageService) Upload(ctx context.Context, userID, container, objectPath string, header *multipart.FileHeader) (*types.UploadResponse, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}
	if userID == "" || OwnerSegment(key) != userID {
		return nil, ErrForbidden
	}
	bucket, err := s.Config.Bucket(container)
	if err != nil {
		return nil, ErrObjectNotFound
	}
	if header == nil {
		return nil, ErrNotPDF
	}
	if header.Size > s.Config.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	body, err := sniffPDF(file)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Put(ctx, bucket, key, body, header.Size, pdfContentType); err != nil {
		return nil, err
	}

	return &types.UploadResponse{
		Key:       container + "/" + key,
		PublicURL: storageref.PublicURL(s.Config.PublicBaseURL, container, key),
		Size:      header.Size,
	}, nil
}

func (s *StorageService) Remove(ctx context.Context, userID, container, objectPath string) error {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return err
	}
	if userID == "" || OwnerSegment(key) != userID {
		caller, err := s.ProfileDAO.FindById(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		if err != nil {
			return err
		}
		if !caller.IsAdmin() {
			return ErrForbidden
		}
	}
	return s.delete(ctx, container, key)
}

func (s *StorageService) Purge(ctx context.Context, container, objectPath string) error {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return err
	}
	return s.delete(ctx, container, key)
}

func (s *StorageService) Open(ctx context.Context, container, objectPath string) (io.ReadCloser, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}
	bucket, err := s.Config.Bucket(container)
	if err != nil {
		return nil, ErrObjectNotFound
	}
	rc, err := s.Store.Get(ctx, bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrObjectNotFound
	}
	return rc, err
}

func (s *StorageService) delete(ctx context.Context, container, key string) error {
	bucket, err := s.Config.Bucket(container)
	if err != nil {
		return ErrObjectNotFound
	}
	err = s.Store.Delete(ctx, bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return ErrObjectNotFound
	}
	return err
}

// CleanObjectPath 去掉首尾斜杠, 拒绝空路径和 "." ".." 段
func CleanObjectPath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidPath
		}
	}
	if path.Clean(p) != p {
		return "", ErrInvalidPath
	}
	return p, nil
}

// OwnerSegment 对象路径的第一段, 约定为上传者ID; 没有文件夹时返回空
func OwnerSegment(key string) string {
	owner, _, found := strings.Cut(key, "/")
	if !found {
		return ""
	}
	return owner
}

// sniffPDF 读取文件头判断类型, 返回拼接回完整内容的 reader
func sniffPDF(r io.Reader) (io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]
	if http.DetectContentType(head) != pdfContentType {
		return nil, ErrNotPDF
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}
