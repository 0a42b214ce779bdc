package board

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated  = errors.New("sign in required")
	ErrPermissionDenied  = errors.New("only the uploader or an admin can delete this note")
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrNotFound          = errors.New("note not found")
	ErrInvalidUpload     = errors.New("invalid upload")
)

type Kind int

const (
	KindUpvoteFailed Kind = iota + 1
	KindDeleteFailed
	KindUploadFailed
)

func (k Kind) String() string {
	switch k {
	case KindUpvoteFailed:
		return "upvote failed"
	case KindDeleteFailed:
		return "delete failed"
	case KindUploadFailed:
		return "upload failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// OpError is a failed remote step whose local effects were rolled back.
// Every OpError is safe to retry.
type OpError struct {
	Kind   Kind
	NoteID string
	Err    error
}

var (
	ErrUpvoteFailed = &OpError{Kind: KindUpvoteFailed}
	ErrDeleteFailed = &OpError{Kind: KindDeleteFailed}
	ErrUploadFailed = &OpError{Kind: KindUploadFailed}
)

func (e *OpError) Error() string {
	msg := e.Kind.String()
	if e.NoteID != "" {
		msg += " for note " + e.NoteID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Err }

// Is matches any OpError of the same kind, so errors.Is(err, ErrDeleteFailed) works.
func (e *OpError) Is(target error) bool {
	t, ok := target.(*OpError)
	return ok && t.Kind == e.Kind
}

func (e *OpError) Retryable() bool { return true }

// StorageDeleteWarning means the file stayed in storage while the note record went away.
type StorageDeleteWarning struct {
	FileURL string
	Err     error
}

func (w StorageDeleteWarning) Error() string {
	return fmt.Sprintf("file could not be removed from storage, but the record will still be removed: %v", w.Err)
}

func (w StorageDeleteWarning) Unwrap() error { return w.Err }
