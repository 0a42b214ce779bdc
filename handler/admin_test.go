package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studybuddy/models"
	"studybuddy/service"
	"studybuddy/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminService struct {
	service.IAdminService
	roles  map[string]string
	purged []string
}

func (f *fakeAdminService) IsAdmin(_ context.Context, userID string) (bool, error) {
	return f.roles[userID] == models.RoleAdmin, nil
}

func (f *fakeAdminService) Users(context.Context) ([]*types.AdminUser, error) {
	return []*types.AdminUser{
		{ProfileResponse: types.ProfileResponse{ID: "u1", Email: "a@example.com", Role: models.RoleUser}, ResourceCount: 2},
	}, nil
}

func (f *fakeAdminService) ToggleRole(_ context.Context, userID string) (string, error) {
	role, ok := f.roles[userID]
	if !ok {
		return "", service.ErrUserNotFound
	}
	if role == models.RoleAdmin {
		f.roles[userID] = models.RoleUser
	} else {
		f.roles[userID] = models.RoleAdmin
	}
	return f.roles[userID], nil
}

func (f *fakeAdminService) PurgeNotes(_ context.Context, userID string) (*types.PurgeNotesResponse, error) {
	f.purged = append(f.purged, userID)
	return &types.PurgeNotesResponse{Deleted: 2, Warnings: []string{"study_notes/x/y.pdf: 文件不存在"}}, nil
}

func newAdminRouter(admin *fakeAdminService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Admin{Config: testConfig(), AdminService: admin}
	h.RegisterRouter(r.Group("/api"))
	return r
}

func TestAdmin_RoutesRequireAdmin(t *testing.T) {
	admin := &fakeAdminService{roles: map[string]string{"root": models.RoleAdmin, "u1": models.RoleUser}}
	r := newAdminRouter(admin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/u1/notes", nil)
	req.Header.Set("Authorization", bearer(t, "u1", "a@example.com"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, admin.purged)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", bearer(t, "root", "root@example.com"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0]["email"])
	assert.EqualValues(t, 2, users[0]["resource_count"])
}

func TestAdmin_ToggleRoleAndPurge(t *testing.T) {
	admin := &fakeAdminService{roles: map[string]string{"root": models.RoleAdmin, "u1": models.RoleUser}}
	r := newAdminRouter(admin)
	auth := bearer(t, "root", "root@example.com")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users/u1/role", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled types.ToggleRoleResponse
	decode(t, w, &toggled)
	assert.Equal(t, types.ToggleRoleResponse{ID: "u1", Role: models.RoleAdmin}, toggled)

	// 角色每次请求回源, 刚提升的用户立即可用管理接口
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/someone/notes", nil)
	req.Header.Set("Authorization", bearer(t, "u1", "a@example.com"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var purged types.PurgeNotesResponse
	decode(t, w, &purged)
	assert.Equal(t, 2, purged.Deleted)
	assert.Len(t, purged.Warnings, 1)
	assert.Equal(t, []string{"someone"}, admin.purged)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/users/ghost/role", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type fakeAuthService struct {
	service.IAuthService
	resetRequests []string
}

func (f *fakeAuthService) SignUp(_ context.Context, email, _ string) (*models.Profile, error) {
	if email == "taken@example.com" {
		return nil, service.ErrEmailTaken
	}
	return &models.Profile{ID: "new", Email: email, Role: models.RoleUser}, nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, _ string) (*types.SignInResponse, error) {
	if email == "pending@example.com" {
		return nil, service.ErrNotConfirmed
	}
	return nil, service.ErrInvalidCredentials
}

func (f *fakeAuthService) RequestPasswordReset(_ context.Context, email string) error {
	f.resetRequests = append(f.resetRequests, email)
	return nil
}

func (f *fakeAuthService) ResetPassword(context.Context, string, string) error {
	return service.ErrInvalidToken
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := &fakeAuthService{}
	(&Auth{Config: testConfig(), AuthService: auth}).RegisterRouter(r.Group("/api"))

	w := postJSON(r, "/api/v1/auth/signup", `{"email":"taken@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/api/v1/auth/signup", `{"email":"new@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var profile types.ProfileResponse
	decode(t, w, &profile)
	assert.Equal(t, "new@example.com", profile.Email)

	w = postJSON(r, "/api/v1/auth/signin", `{"email":"pending@example.com","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/api/v1/auth/reset-password", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"nobody@example.com"}, auth.resetRequests)

	w = postJSON(r, "/api/v1/auth/reset-password/confirm", `{"token":"used","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/v1/auth/signup", `{"email":"not-an-email","password":"secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
