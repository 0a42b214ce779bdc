package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"studybuddy/config"
	"studybuddy/dao"
	"studybuddy/dao/cache"
	"studybuddy/models"
	"studybuddy/pkg/encrypt"
	"studybuddy/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authSecret = "auth-test-secret"

var (
	countProfilesSQL      = regexp.QuoteMeta("SELECT count(*) FROM `profiles`")
	insertProfileSQL      = regexp.QuoteMeta("INSERT INTO `profiles`")
	selectProfileByEmail  = regexp.QuoteMeta("SELECT * FROM `profiles` WHERE email = ?")
	updatePasswordHashSQL = regexp.QuoteMeta("UPDATE `profiles` SET")
)

func newAuthService(t *testing.T, requireConfirmation bool) (*AuthService, sqlmock.Sqlmock, *fakeTokens, *fakeMailer) {
	t.Helper()
	db, mock := newMockDB(t)
	tokens := newFakeTokens()
	mailer := &fakeMailer{}
	return &AuthService{
		ProfileDAO:   dao.NewProfileDAO(db),
		TokenStorage: tokens,
		Mailer:       mailer,
		Config: &config.Config{
			Jwt:  &config.Jwt{Secret: authSecret, ExpiresTime: 3600},
			Auth: &config.Auth{SiteURL: "https://studybuddy.example.com/", RequireConfirmation: requireConfirmation},
		},
	}, mock, tokens, mailer
}

func hashedProfileRow(t *testing.T, id, email, password string, confirmedAt *time.Time) *sqlmock.Rows {
	t.Helper()
	hash, err := encrypt.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	var confirmed any
	if confirmedAt != nil {
		confirmed = *confirmedAt
	}
	return sqlmock.NewRows(profileColumns).AddRow(id, email, models.RoleUser, hash, confirmed, now, now)
}

func TestAuthService_SignUpDuplicateEmail(t *testing.T) {
	s, mock, _, mailer := newAuthService(t, false)

	mock.ExpectQuery(countProfilesSQL).WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := s.SignUp(context.Background(), "Taken@Example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, mailer.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_SignUpSendsConfirmation(t *testing.T) {
	s, mock, tokens, mailer := newAuthService(t, true)

	mock.ExpectQuery(countProfilesSQL).WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec(insertProfileSQL).WillReturnResult(sqlmock.NewResult(0, 1))

	profile, err := s.SignUp(context.Background(), " New@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)
	assert.Nil(t, profile.ConfirmedAt)
	assert.True(t, encrypt.VerifyPassword(profile.PasswordHash, "secret123"))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "new@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "https://studybuddy.example.com/api/v1/auth/confirm?token="+tokens.last)
	assert.Contains(t, tokens.tokens, cache.TokenPurposeConfirm+":"+tokens.last)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_SignInConfirmationGate(t *testing.T) {
	s, mock, _, _ := newAuthService(t, true)
	ctx := context.Background()

	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(hashedProfileRow(t, "u1", "a@example.com", "secret123", nil))
	_, err := s.SignIn(ctx, "a@example.com", "secret123")
	assert.ErrorIs(t, err, ErrNotConfirmed)

	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(hashedProfileRow(t, "u1", "a@example.com", "secret123", nil))
	_, err = s.SignIn(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(sqlmock.NewRows(profileColumns))
	_, err = s.SignIn(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	confirmed := time.Now()
	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(hashedProfileRow(t, "u1", "a@example.com", "secret123", &confirmed))
	resp, err := s.SignIn(ctx, "A@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "u1", resp.User.ID)

	claims, err := jwt.ParseToken([]byte(authSecret), jwt.TokenTypeAccess, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	s, mock, tokens, mailer := newAuthService(t, false)
	ctx := context.Background()

	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(sqlmock.NewRows(profileColumns))
	require.NoError(t, s.RequestPasswordReset(ctx, "nobody@example.com"))
	assert.Empty(t, mailer.sent)
	assert.Empty(t, tokens.tokens)

	mock.ExpectQuery(selectProfileByEmail).WillReturnRows(hashedProfileRow(t, "u1", "a@example.com", "secret123", nil))
	require.NoError(t, s.RequestPasswordReset(ctx, "a@example.com"))
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Body, tokens.last)
	assert.Equal(t, "u1", tokens.tokens[cache.TokenPurposeReset+":"+tokens.last])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_ResetTokenIsSingleUse(t *testing.T) {
	s, mock, tokens, _ := newAuthService(t, false)
	ctx := context.Background()
	require.NoError(t, tokens.Save(ctx, cache.TokenPurposeReset, "tok", "u1", time.Hour))

	mock.ExpectExec(updatePasswordHashSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.ResetPassword(ctx, "tok", "new-secret"))

	err := s.ResetPassword(ctx, "tok", "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 确认令牌不能拿来重置密码
	require.NoError(t, tokens.Save(ctx, cache.TokenPurposeConfirm, "confirm-tok", "u1", time.Hour))
	err = s.ResetPassword(ctx, "confirm-tok", "new-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_UpdatePasswordUnknownUser(t *testing.T) {
	s, mock, _, _ := newAuthService(t, false)

	mock.ExpectExec(updatePasswordHashSQL).WillReturnResult(sqlmock.NewResult(0, 0))
	err := s.UpdatePassword(context.Background(), "ghost", "new-secret")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
