package client

import (
	"context"
	"net/http"
	"net/url"

	"studybuddy/types"
)

// Notes is the note repository client.
type Notes struct {
	api *API
}

func NewNotes(api *API) *Notes {
	return &Notes{api: api}
}

// ListNotes returns every note, newest first.
func (n *Notes) ListNotes(ctx context.Context) ([]*types.Note, error) {
	var notes []*types.Note
	if err := n.api.doJSON(ctx, http.MethodGet, "/api/v1/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, validateNotes(notes)
}

func (n *Notes) ListNotesByOwner(ctx context.Context, email string) ([]*types.Note, error) {
	var notes []*types.Note
	path := "/api/v1/notes?user_email=" + url.QueryEscape(email)
	if err := n.api.doJSON(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, validateNotes(notes)
}

// GetNote fails with ErrNotFound when the note does not exist.
func (n *Notes) GetNote(ctx context.Context, id string) (*types.Note, error) {
	var note types.Note
	if err := n.api.doJSON(ctx, http.MethodGet, "/api/v1/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, validateNote(&note)
}

// InsertNote creates a note owned by the signed-in user.
func (n *Notes) InsertNote(ctx context.Context, req types.CreateNoteRequest) (*types.Note, error) {
	var note types.Note
	if err := n.api.doJSON(ctx, http.MethodPost, "/api/v1/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, validateNote(&note)
}

func (n *Notes) DeleteNote(ctx context.Context, id string) error {
	return n.api.doJSON(ctx, http.MethodDelete, "/api/v1/notes/"+url.PathEscape(id), nil, nil)
}

// IncrementUpvoteIfAbsent reports whether this call counted. The caller is
// identified by the bearer token.
func (n *Notes) IncrementUpvoteIfAbsent(ctx context.Context, id string) (bool, error) {
	var resp types.UpvoteResponse
	if err := n.api.doJSON(ctx, http.MethodPost, "/api/v1/notes/"+url.PathEscape(id)+"/upvote", nil, &resp); err != nil {
		return false, err
	}
	return resp.Applied, nil
}

func (n *Notes) HasUpvoted(ctx context.Context, id string) (bool, error) {
	var resp types.UpvoteStatusResponse
	if err := n.api.doJSON(ctx, http.MethodGet, "/api/v1/notes/"+url.PathEscape(id)+"/upvote", nil, &resp); err != nil {
		return false, err
	}
	return resp.HasUpvoted, nil
}

func (n *Notes) ListSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := n.api.doJSON(ctx, http.MethodGet, "/api/v1/subjects", nil, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}
