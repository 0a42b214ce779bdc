package board

import (
	"context"
	"errors"
	"fmt"

	"studybuddy/internal/client"
	"studybuddy/internal/session"
	"studybuddy/pkg/log"

	"go.uber.org/zap"
)

// FetchNoteWithUpvoteStatus loads one note and, for a signed-in user, whether
// they already upvoted it. A failed status lookup is not fatal.
func (b *Board) FetchNoteWithUpvoteStatus(ctx context.Context, noteID string, user *session.User) (NoteView, error) {
	note, err := b.notes.GetNote(ctx, noteID)
	if errors.Is(err, client.ErrNotFound) {
		return NoteView{}, ErrNotFound
	}
	if err != nil {
		return NoteView{}, fmt.Errorf("fetch note %s: %w", noteID, err)
	}

	hasUpvoted := false
	if user != nil {
		hasUpvoted, err = b.notes.HasUpvoted(ctx, noteID)
		if err != nil {
			log.L.Warn("check upvote status", zap.String("note_id", noteID), zap.Error(err))
			hasUpvoted = false
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, e := b.find(noteID)
	if e == nil {
		e = &entry{}
		b.entries = append(b.entries, e)
	}
	if e.upvote.state != Pending {
		e.note = copyNote(*note)
	}
	e.hasUpvoted = e.hasUpvoted || hasUpvoted
	return e.view(), nil
}
