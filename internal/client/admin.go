package client

import (
	"context"
	"net/http"
	"net/url"

	"studybuddy/types"
)

type Admin struct {
	api *API
}

func NewAdmin(api *API) *Admin {
	return &Admin{api: api}
}

func (a *Admin) Users(ctx context.Context) ([]*types.AdminUser, error) {
	var users []*types.AdminUser
	if err := a.api.doJSON(ctx, http.MethodGet, "/api/v1/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ToggleRole flips user and admin, returning the new role.
func (a *Admin) ToggleRole(ctx context.Context, userID string) (string, error) {
	var resp types.ToggleRoleResponse
	if err := a.api.doJSON(ctx, http.MethodPost, "/api/v1/admin/users/"+url.PathEscape(userID)+"/role", nil, &resp); err != nil {
		return "", err
	}
	return resp.Role, nil
}

func (a *Admin) PurgeNotes(ctx context.Context, userID string) (*types.PurgeNotesResponse, error) {
	var resp types.PurgeNotesResponse
	if err := a.api.doJSON(ctx, http.MethodDelete, "/api/v1/admin/users/"+url.PathEscape(userID)+"/notes", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
