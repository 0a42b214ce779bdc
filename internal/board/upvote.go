package board

import (
	"context"

	"studybuddy/internal/session"
	"studybuddy/pkg/log"

	"go.uber.org/zap"
)

type UpvoteStatus int

const (
	StatusApplied UpvoteStatus = iota + 1
	// StatusAlreadyUpvoted is informational: the store already had this user's upvote.
	StatusAlreadyUpvoted
)

func (s UpvoteStatus) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusAlreadyUpvoted:
		return "already upvoted"
	}
	return "unknown"
}

type UpvoteResult struct {
	Status  UpvoteStatus
	Upvotes int64
}

// Upvote shows the new count immediately and reverts it if the store does
// not accept the upvote.
func (b *Board) Upvote(ctx context.Context, noteID string, user *session.User) (UpvoteResult, error) {
	if user == nil {
		return UpvoteResult{}, ErrNotAuthenticated
	}
	release, ok := b.acquire("upvote", noteID)
	if !ok {
		return UpvoteResult{}, ErrAlreadyInProgress
	}
	defer release()

	b.mu.Lock()
	_, e := b.find(noteID)
	if e == nil {
		b.mu.Unlock()
		return UpvoteResult{}, ErrNotFound
	}
	if e.hasUpvoted {
		count := e.note.Upvotes
		b.mu.Unlock()
		return UpvoteResult{Status: StatusAlreadyUpvoted, Upvotes: count}, nil
	}
	e.upvote.to(Pending)
	prev := e.note.Upvotes
	e.note.Upvotes = prev + 1
	b.mu.Unlock()

	applied, err := b.notes.IncrementUpvoteIfAbsent(ctx, noteID)

	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case err != nil:
		e.note.Upvotes = prev
		e.upvote.to(RolledBack)
		log.L.Warn("upvote rolled back", zap.String("note_id", noteID), zap.Error(err))
		return UpvoteResult{Upvotes: prev}, &OpError{Kind: KindUpvoteFailed, NoteID: noteID, Err: err}
	case !applied:
		e.note.Upvotes = prev
		e.hasUpvoted = true
		e.upvote.to(RolledBack)
		return UpvoteResult{Status: StatusAlreadyUpvoted, Upvotes: prev}, nil
	default:
		e.hasUpvoted = true
		e.upvote.to(Committed)
		return UpvoteResult{Status: StatusApplied, Upvotes: e.note.Upvotes}, nil
	}
}
