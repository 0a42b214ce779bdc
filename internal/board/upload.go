package board

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"studybuddy/internal/session"
	"studybuddy/pkg/log"
	"studybuddy/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	Container      = "study_notes"
	MaxUploadBytes = 5 << 20
)

type UploadInput struct {
	Title    string
	Subject  string
	FileName string
	Data     []byte
}

func (in UploadInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidUpload)
	case strings.TrimSpace(in.Subject) == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidUpload)
	case len(in.Data) == 0:
		return fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	case len(in.Data) > MaxUploadBytes:
		return fmt.Errorf("%w: file is larger than 5 MB", ErrInvalidUpload)
	case http.DetectContentType(in.Data) != "application/pdf":
		return fmt.Errorf("%w: only PDF files are accepted", ErrInvalidUpload)
	}
	return nil
}

// ObjectPath is <userID>/<unix-ms>_<8 random chars>.<ext>.
func ObjectPath(userID string, at time.Time, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext == "" {
		ext = "pdf"
	}
	return fmt.Sprintf("%s/%d_%s.%s", userID, at.UnixMilli(), uuid.NewString()[:8], ext)
}

// Upload stores the file, then inserts the note pointing at it. The new note
// is prepended to the collection.
func (b *Board) Upload(ctx context.Context, user *session.User, in UploadInput) (types.Note, error) {
	if user == nil {
		return types.Note{}, ErrNotAuthenticated
	}
	if err := in.validate(); err != nil {
		return types.Note{}, err
	}

	path := ObjectPath(user.ID, b.now(), in.FileName)
	fileURL, err := b.files.Upload(ctx, Container, path, in.Data)
	if err != nil {
		return types.Note{}, &OpError{Kind: KindUploadFailed, Err: err}
	}

	note, err := b.notes.InsertNote(ctx, types.CreateNoteRequest{
		Title:   strings.TrimSpace(in.Title),
		Subject: strings.TrimSpace(in.Subject),
		FileURL: &fileURL,
	})
	if err != nil {
		if rmErr := b.files.Remove(ctx, Container, path); rmErr != nil {
			log.L.Warn("remove orphaned upload", zap.String("path", path), zap.Error(rmErr))
		}
		return types.Note{}, &OpError{Kind: KindUploadFailed, Err: err}
	}

	b.mu.Lock()
	b.insertAt(0, &entry{note: copyNote(*note)})
	b.mu.Unlock()
	return copyNote(*note), nil
}
