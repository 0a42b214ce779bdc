package client

import (
	"context"
	"net/http"

	"studybuddy/types"
)

type Auth struct {
	api *API
}

func NewAuth(api *API) *Auth {
	return &Auth{api: api}
}

func (a *Auth) SignUp(ctx context.Context, email, password string) (*types.ProfileResponse, error) {
	var profile types.ProfileResponse
	req := types.SignUpRequest{Email: email, Password: password}
	if err := a.api.doJSON(ctx, http.MethodPost, "/api/v1/auth/signup", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*types.SignInResponse, error) {
	var resp types.SignInResponse
	req := types.SignInRequest{Email: email, Password: password}
	if err := a.api.doJSON(ctx, http.MethodPost, "/api/v1/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil || resp.User.ID == "" {
		return nil, ErrInvalidResponse
	}
	return &resp, nil
}

func (a *Auth) Profile(ctx context.Context) (*types.ProfileResponse, error) {
	var profile types.ProfileResponse
	if err := a.api.doJSON(ctx, http.MethodGet, "/api/v1/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	req := types.PasswordResetRequest{Email: email}
	return a.api.doJSON(ctx, http.MethodPost, "/api/v1/auth/reset-password", req, nil)
}

func (a *Auth) ResetPassword(ctx context.Context, token, password string) error {
	req := types.PasswordResetConfirmRequest{Token: token, Password: password}
	return a.api.doJSON(ctx, http.MethodPost, "/api/v1/auth/reset-password/confirm", req, nil)
}

func (a *Auth) UpdatePassword(ctx context.Context, password string) error {
	req := types.UpdatePasswordRequest{Password: password}
	return a.api.doJSON(ctx, http.MethodPost, "/api/v1/auth/password", req, nil)
}
