// Package board keeps the note collection the CLI renders and runs the
// optimistic upvote and the delete-with-rollback flows against it.
package board

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"studybuddy/internal/session"
	"studybuddy/types"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// NoteRepository is the authoritative note store.
type NoteRepository interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	ListNotesByOwner(ctx context.Context, email string) ([]*types.Note, error)
	GetNote(ctx context.Context, id string) (*types.Note, error)
	InsertNote(ctx context.Context, req types.CreateNoteRequest) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
	IncrementUpvoteIfAbsent(ctx context.Context, id string) (bool, error)
	HasUpvoted(ctx context.Context, id string) (bool, error)
}

// FileStore holds the uploaded PDFs.
type FileStore interface {
	Upload(ctx context.Context, container, path string, data []byte) (string, error)
	Remove(ctx context.Context, container, path string) error
}

// NoteView is a note plus what this session knows about it.
type NoteView struct {
	Note        types.Note
	HasUpvoted  bool
	UpvoteState State
	DeleteState State
}

type entry struct {
	note       types.Note
	hasUpvoted bool
	upvote     machine
	del        machine
}

func (e *entry) view() NoteView {
	return NoteView{
		Note:        copyNote(e.note),
		HasUpvoted:  e.hasUpvoted,
		UpvoteState: e.upvote.state,
		DeleteState: e.del.state,
	}
}

type Board struct {
	notes NoteRepository
	files FileStore
	now   func() time.Time

	// in-flight (operation, note) keys
	inflight cmap.ConcurrentMap[string, struct{}]

	// mu guards entries and is never held across a remote call
	mu      sync.Mutex
	entries []*entry
}

func New(notes NoteRepository, files FileStore) *Board {
	return &Board{
		notes:    notes,
		files:    files,
		now:      time.Now,
		inflight: cmap.New[struct{}](),
	}
}

// Load replaces the collection with every note, newest first.
func (b *Board) Load(ctx context.Context) error {
	notes, err := b.notes.ListNotes(ctx)
	if err != nil {
		return err
	}
	b.replace(notes)
	return nil
}

// LoadMine replaces the collection with the user's own notes.
func (b *Board) LoadMine(ctx context.Context, user *session.User) error {
	if user == nil {
		return ErrNotAuthenticated
	}
	notes, err := b.notes.ListNotesByOwner(ctx, user.Email)
	if err != nil {
		return err
	}
	b.replace(notes)
	return nil
}

func (b *Board) replace(notes []*types.Note) {
	entries := make([]*entry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, &entry{note: copyNote(*n)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].note.CreatedAt.After(entries[j].note.CreatedAt)
	})

	b.mu.Lock()
	b.entries = entries
	b.mu.Unlock()
}

// Notes returns a snapshot of the collection.
func (b *Board) Notes() []types.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.Note, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, copyNote(e.note))
	}
	return out
}

func (b *Board) View(noteID string) (NoteView, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, e := b.find(noteID)
	if e == nil {
		return NoteView{}, false
	}
	return e.view(), true
}

// Subjects lists unique subjects in first-seen order.
func (b *Board) Subjects() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]bool)
	var subjects []string
	for _, e := range b.entries {
		if !seen[e.note.Subject] {
			seen[e.note.Subject] = true
			subjects = append(subjects, e.note.Subject)
		}
	}
	return subjects
}

// Filter keeps notes whose title contains search (case-insensitive) and whose
// subject equals subject. Empty arguments match everything.
func (b *Board) Filter(search, subject string) []types.Note {
	search = strings.ToLower(strings.TrimSpace(search))
	var out []types.Note
	for _, n := range b.Notes() {
		if search != "" && !strings.Contains(strings.ToLower(n.Title), search) {
			continue
		}
		if subject != "" && n.Subject != subject {
			continue
		}
		out = append(out, n)
	}
	return out
}

// CanDelete reports whether user may delete note.
func CanDelete(user *session.User, note types.Note) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || strings.EqualFold(user.Email, note.UserEmail)
}

// find must be called with mu held.
func (b *Board) find(noteID string) (int, *entry) {
	for i, e := range b.entries {
		if e.note.ID == noteID {
			return i, e
		}
	}
	return -1, nil
}

// insertAt must be called with mu held.
func (b *Board) insertAt(idx int, e *entry) {
	if idx < 0 || idx > len(b.entries) {
		idx = len(b.entries)
	}
	b.entries = append(b.entries, nil)
	copy(b.entries[idx+1:], b.entries[idx:])
	b.entries[idx] = e
}

// acquire claims the (op, note) key; the returned func releases it.
func (b *Board) acquire(op, noteID string) (func(), bool) {
	key := op + ":" + noteID
	if !b.inflight.SetIfAbsent(key, struct{}{}) {
		return nil, false
	}
	return func() { b.inflight.Remove(key) }, true
}

func copyNote(n types.Note) types.Note {
	if n.FileURL != nil {
		u := *n.FileURL
		n.FileURL = &u
	}
	return n
}
