// Package session holds the signed-in identity of the CLI and tells
// interested parties when it changes.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"studybuddy/pkg/log"
	"studybuddy/types"

	"go.uber.org/zap"
)

const RoleAdmin = "admin"

var ErrNotSignedIn = errors.New("not signed in")

type User struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthAPI is the identity backend.
type AuthAPI interface {
	SignUp(ctx context.Context, email, password string) (*types.ProfileResponse, error)
	SignIn(ctx context.Context, email, password string) (*types.SignInResponse, error)
	Profile(ctx context.Context) (*types.ProfileResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdatePassword(ctx context.Context, password string) error
}

type Provider struct {
	auth  AuthAPI
	store *Store
	now   func() time.Time

	mu     sync.RWMutex
	state  state
	subs   map[int]func(*User)
	nextID int
}

// Open loads a persisted session. An expired session is dropped.
func Open(store *Store, auth AuthAPI) (*Provider, error) {
	p := &Provider{
		auth:  auth,
		store: store,
		now:   time.Now,
		subs:  make(map[int]func(*User)),
	}
	st, err := store.load()
	if err != nil {
		return nil, err
	}
	if st.valid(p.now()) {
		p.state = st
	}
	return p, nil
}

// Current returns a copy of the signed-in user, or nil.
func (p *Provider) Current() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.state.valid(p.now()) {
		return nil
	}
	u := *p.state.User
	return &u
}

func (p *Provider) AccessToken() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.state.valid(p.now()) {
		return ""
	}
	return p.state.AccessToken
}

// Subscribe registers fn for identity changes and returns its unsubscribe.
func (p *Provider) Subscribe(fn func(*User)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subs, id)
		})
	}
}

func (p *Provider) SignUp(ctx context.Context, email, password string) (*types.ProfileResponse, error) {
	return p.auth.SignUp(ctx, strings.TrimSpace(email), password)
}

// SignIn stores the token, then learns the role from the profile.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*User, error) {
	resp, err := p.auth.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	user := &User{ID: resp.User.ID, Email: resp.User.Email, Role: resp.User.Role}
	p.mu.Lock()
	p.state = state{
		User:        user,
		AccessToken: resp.AccessToken,
		ExpiresAt:   p.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	p.mu.Unlock()

	if profile, err := p.auth.Profile(ctx); err != nil {
		log.L.Warn("fetch profile after sign in", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		p.mu.Lock()
		p.state.User.Role = profile.Role
		p.mu.Unlock()
	}

	if err := p.persist(); err != nil {
		return nil, err
	}
	current := p.Current()
	p.notify(current)
	return current, nil
}

func (p *Provider) SignOut() error {
	p.mu.Lock()
	p.state = state{}
	p.mu.Unlock()

	if err := p.persist(); err != nil {
		return err
	}
	p.notify(nil)
	return nil
}

// Refresh reloads the role, which an admin may have changed.
func (p *Provider) Refresh(ctx context.Context) (*User, error) {
	current := p.Current()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	profile, err := p.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	// signed out or switched user while the profile was loading
	if p.state.User == nil || p.state.User.ID != current.ID {
		p.mu.Unlock()
		return nil, ErrNotSignedIn
	}
	changed := p.state.User.Role != profile.Role
	p.state.User.Role = profile.Role
	p.mu.Unlock()

	if changed {
		if err := p.persist(); err != nil {
			return nil, err
		}
		p.notify(p.Current())
	}
	return p.Current(), nil
}

func (p *Provider) RequestPasswordReset(ctx context.Context, email string) error {
	return p.auth.RequestPasswordReset(ctx, strings.TrimSpace(email))
}

func (p *Provider) ResetPassword(ctx context.Context, token, password string) error {
	return p.auth.ResetPassword(ctx, strings.TrimSpace(token), password)
}

func (p *Provider) UpdatePassword(ctx context.Context, password string) error {
	if p.Current() == nil {
		return ErrNotSignedIn
	}
	return p.auth.UpdatePassword(ctx, password)
}

func (p *Provider) persist() error {
	p.mu.RLock()
	st := p.state
	p.mu.RUnlock()
	return p.store.save(st)
}

// notify runs subscribers outside the lock so they may call back in.
func (p *Provider) notify(u *User) {
	p.mu.RLock()
	fns := make([]func(*User), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		var cp *User
		if u != nil {
			c := *u
			cp = &c
		}
		fn(cp)
	}
}
