package board

import (
	"context"

	"studybuddy/internal/session"
	"studybuddy/pkg/log"
	"studybuddy/pkg/storageref"

	"go.uber.org/zap"
)

type DeleteResult struct {
	Warnings []StorageDeleteWarning
}

// Delete removes the file first, then the record. A storage failure only adds
// a warning; a record failure puts the note back where it was.
func (b *Board) Delete(ctx context.Context, noteID string, user *session.User) (DeleteResult, error) {
	if user == nil {
		return DeleteResult{}, ErrNotAuthenticated
	}
	release, ok := b.acquire("delete", noteID)
	if !ok {
		return DeleteResult{}, ErrAlreadyInProgress
	}
	defer release()

	b.mu.Lock()
	idx, e := b.find(noteID)
	if e == nil {
		b.mu.Unlock()
		return DeleteResult{}, ErrNotFound
	}
	if !CanDelete(user, e.note) {
		b.mu.Unlock()
		return DeleteResult{}, ErrPermissionDenied
	}
	e.del.to(Pending)
	prevID, nextID := b.neighbours(idx)
	b.entries = append(b.entries[:idx], b.entries[idx+1:]...)
	var fileURL string
	if e.note.FileURL != nil {
		fileURL = *e.note.FileURL
	}
	b.mu.Unlock()

	var res DeleteResult
	if fileURL != "" {
		if w := b.removeFile(ctx, fileURL); w != nil {
			res.Warnings = append(res.Warnings, *w)
		}
	}

	if err := b.notes.DeleteNote(ctx, noteID); err != nil {
		b.mu.Lock()
		b.insertAt(b.restoreIndex(idx, prevID, nextID), e)
		e.del.to(RolledBack)
		b.mu.Unlock()
		log.L.Warn("delete rolled back", zap.String("note_id", noteID), zap.Error(err))
		return DeleteResult{}, &OpError{Kind: KindDeleteFailed, NoteID: noteID, Err: err}
	}

	b.mu.Lock()
	e.del.to(Committed)
	b.mu.Unlock()
	return res, nil
}

// neighbours returns the ids around idx; mu must be held.
func (b *Board) neighbours(idx int) (prevID, nextID string) {
	if idx > 0 {
		prevID = b.entries[idx-1].note.ID
	}
	if idx+1 < len(b.entries) {
		nextID = b.entries[idx+1].note.ID
	}
	return prevID, nextID
}

// restoreIndex puts a note back between the same neighbours even if the
// collection changed while the delete was in flight; mu must be held.
func (b *Board) restoreIndex(idx int, prevID, nextID string) int {
	if nextID != "" {
		if i, e := b.find(nextID); e != nil {
			return i
		}
	}
	if prevID != "" {
		if i, e := b.find(prevID); e != nil {
			return i + 1
		}
	}
	return idx
}

func (b *Board) removeFile(ctx context.Context, fileURL string) *StorageDeleteWarning {
	ref, err := storageref.Parse(fileURL)
	if err == nil {
		err = b.files.Remove(ctx, ref.Container, ref.Path)
	}
	if err == nil {
		return nil
	}
	log.L.Warn("remove file", zap.String("file_url", fileURL), zap.Error(err))
	return &StorageDeleteWarning{FileURL: fileURL, Err: err}
}
