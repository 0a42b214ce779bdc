package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"studybuddy/dao/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

var (
	profileColumns = []string{"id", "email", "role", "password_hash", "confirmed_at", "created_at", "updated_at"}
	noteColumns    = []string{"id", "title", "subject", "user_email", "file_url", "created_at", "upvotes"}
)

// fakeTokens 内存版一次性令牌
type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]string
	last   string
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]string{}}
}

func (f *fakeTokens) Save(_ context.Context, purpose, token, uid string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[purpose+":"+token] = uid
	f.last = token
	return nil
}

func (f *fakeTokens) Consume(_ context.Context, purpose, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.tokens[purpose+":"+token]
	if !ok {
		return "", cache.ErrTokenNotFound
	}
	delete(f.tokens, purpose+":"+token)
	return uid, nil
}

type fakeSubjects struct {
	mu          sync.Mutex
	subjects    []string
	invalidated int
}

func (f *fakeSubjects) Get(context.Context) ([]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subjects, f.subjects != nil
}

func (f *fakeSubjects) Set(_ context.Context, subjects []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = subjects
	return nil
}

func (f *fakeSubjects) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = nil
	f.invalidated++
	return nil
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
