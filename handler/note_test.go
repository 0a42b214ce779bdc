package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studybuddy/config"
	"studybuddy/models"
	"studybuddy/pkg/jwt"
	"studybuddy/service"
	"studybuddy/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Jwt:     &config.Jwt{Secret: testSecret, ExpiresTime: 3600},
		Storage: &config.Storage{MaxUploadBytes: 5 << 20},
	}
}

func bearer(t *testing.T, uid, email string) string {
	t.Helper()
	token, err := jwt.GenerateToken([]byte(testSecret), uid, email, jwt.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type fakeNoteService struct {
	service.INoteService
	notes   map[string]*models.Note
	created *models.Note
	creator string
	deleter string
}

func (f *fakeNoteService) List(context.Context) ([]*models.Note, error) {
	out := make([]*models.Note, 0, len(f.notes))
	for _, n := range f.notes {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoteService) Get(_ context.Context, id string) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, service.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeNoteService) Create(_ context.Context, userID, email string, req *types.CreateNoteRequest) (*models.Note, error) {
	f.creator = userID
	f.created = &models.Note{ID: "new", Title: req.Title, Subject: req.Subject, UserEmail: email, FileURL: req.FileURL}
	return f.created, nil
}

func (f *fakeNoteService) Delete(_ context.Context, userID string, noteID string) error {
	n, ok := f.notes[noteID]
	if !ok {
		return service.ErrNoteNotFound
	}
	if userID != "owner-id" || n.UserEmail != "owner@example.com" {
		return service.ErrForbidden
	}
	f.deleter = userID
	delete(f.notes, noteID)
	return nil
}

type fakeUpvoteService struct {
	voted map[string]bool
}

func (f *fakeUpvoteService) Upvote(_ context.Context, userID, noteID string) (bool, error) {
	if noteID == "missing" {
		return false, service.ErrNoteNotFound
	}
	key := userID + "/" + noteID
	if f.voted[key] {
		return false, nil
	}
	f.voted[key] = true
	return true, nil
}

func (f *fakeUpvoteService) HasUpvoted(_ context.Context, userID, noteID string) (bool, error) {
	return f.voted[userID+"/"+noteID], nil
}

func newNoteRouter(notes *fakeNoteService, upvotes *fakeUpvoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Note{Config: testConfig(), NoteService: notes, UpvoteService: upvotes}
	h.RegisterRouter(r.Group("/api"))
	return r
}

func seededNotes() *fakeNoteService {
	url := "https://api.example.com/storage/v1/object/public/study_notes/owner-id/1_abcd1234.pdf"
	return &fakeNoteService{notes: map[string]*models.Note{
		"n1": {ID: "n1", Title: "Linear Algebra", Subject: "Math", UserEmail: "owner@example.com", FileURL: &url, Upvotes: 3},
	}}
}

func TestNote_GetUsesWireFieldNames(t *testing.T) {
	r := newNoteRouter(seededNotes(), &fakeUpvoteService{voted: map[string]bool{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notes/n1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var fields map[string]any
	env := decode(t, w, &fields)
	assert.Equal(t, 0, env.Code)
	for _, k := range []string{"id", "title", "subject", "user_email", "file_url", "created_at", "upvotes"} {
		assert.Contains(t, fields, k)
	}
	assert.EqualValues(t, 3, fields["upvotes"])
}

func TestNote_GetMissingIs404(t *testing.T) {
	r := newNoteRouter(seededNotes(), &fakeUpvoteService{voted: map[string]bool{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notes/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNote_CreateTakesEmailFromToken(t *testing.T) {
	notes := seededNotes()
	r := newNoteRouter(notes, &fakeUpvoteService{voted: map[string]bool{}})

	body := `{"title":"Organic Chem","subject":"Chemistry","user_email":"spoof@example.com"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "u2", "student@example.com"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, notes.created)
	assert.Equal(t, "student@example.com", notes.created.UserEmail)
	assert.Equal(t, "u2", notes.creator)
}

func TestNote_DeleteByNonOwnerIsForbidden(t *testing.T) {
	notes := seededNotes()
	r := newNoteRouter(notes, &fakeUpvoteService{voted: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/notes/n1", nil)
	req.Header.Set("Authorization", bearer(t, "intruder", "intruder@example.com"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, notes.notes, "n1")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/notes/n1", nil)
	req.Header.Set("Authorization", bearer(t, "owner-id", "owner@example.com"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, notes.notes, "n1")
}

func TestNote_UpvoteAppliesOnce(t *testing.T) {
	r := newNoteRouter(seededNotes(), &fakeUpvoteService{voted: map[string]bool{}})
	auth := bearer(t, "u1", "u1@example.com")

	upvote := func() (int, types.UpvoteResponse) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/n1/upvote", nil)
		req.Header.Set("Authorization", auth)
		r.ServeHTTP(w, req)
		var resp types.UpvoteResponse
		if w.Code == http.StatusOK {
			decode(t, w, &resp)
		}
		return w.Code, resp
	}

	code, resp := upvote()
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Applied)

	code, resp = upvote()
	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Applied)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/n1/upvote", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	var status types.UpvoteStatusResponse
	decode(t, w, &status)
	assert.True(t, status.HasUpvoted)
}

func TestNote_UpvoteMissingNote(t *testing.T) {
	r := newNoteRouter(seededNotes(), &fakeUpvoteService{voted: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/missing/upvote", nil)
	req.Header.Set("Authorization", bearer(t, "u1", "u1@example.com"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
