package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"studybuddy/dao"
	"studybuddy/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectProfileByIDSQL = regexp.QuoteMeta("SELECT * FROM `profiles` WHERE id = ?")
	selectNotesByEmail   = regexp.QuoteMeta("SELECT * FROM `resources` WHERE user_email = ?")
	updateProfileSQL     = regexp.QuoteMeta("UPDATE `profiles` SET")
)

func newAdminService(t *testing.T, storage IStorageService) (*AdminService, sqlmock.Sqlmock, *fakeSubjects) {
	t.Helper()
	db, mock := newMockDB(t)
	subjects := &fakeSubjects{}
	return &AdminService{
		ProfileDAO:     dao.NewProfileDAO(db),
		NoteDAO:        dao.NewNoteDAO(db),
		SubjectCache:   subjects,
		StorageService: storage,
	}, mock, subjects
}

func profileRow(id, email, role string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(profileColumns).AddRow(id, email, role, "hash", now, now, now)
}

func TestAdminService_Users(t *testing.T) {
	s, mock, _ := newAdminService(t, nil)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `profiles` ORDER BY created_at ASC")).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow("u1", "a@example.com", models.RoleUser, "h", now, now, now).
			AddRow("u2", "b@example.com", models.RoleAdmin, "h", now, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_email, COUNT(*) AS total FROM `resources`")).
		WillReturnRows(sqlmock.NewRows([]string{"user_email", "total"}).AddRow("a@example.com", 3))

	users, err := s.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, int64(3), users[0].ResourceCount)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
	assert.Zero(t, users[1].ResourceCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_ToggleRole(t *testing.T) {
	s, mock, _ := newAdminService(t, nil)

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(profileRow("u1", "a@example.com", models.RoleUser))
	mock.ExpectExec(updateProfileSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	role, err := s.ToggleRole(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(profileRow("u1", "a@example.com", models.RoleAdmin))
	mock.ExpectExec(updateProfileSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	role, err = s.ToggleRole(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(sqlmock.NewRows(profileColumns))
	_, err = s.ToggleRole(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_IsAdmin(t *testing.T) {
	s, mock, _ := newAdminService(t, nil)

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(profileRow("u2", "b@example.com", models.RoleAdmin))
	ok, err := s.IsAdmin(context.Background(), "u2")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(sqlmock.NewRows(profileColumns))
	ok, err = s.IsAdmin(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_PurgeNotes(t *testing.T) {
	rs := &recordingStorage{}
	s, mock, subjects := newAdminService(t, rs)
	now := time.Now()

	// 第一次删文件时, 记录还没删
	var recordsPendingAtFirstRemove bool
	rs.before = func(objectPath string) {
		if objectPath == "spammer-id/a.pdf" {
			recordsPendingAtFirstRemove = mock.ExpectationsWereMet() != nil
		}
	}

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(profileRow("spammer-id", "spam@example.com", models.RoleUser))
	mock.ExpectQuery(selectNotesByEmail).WillReturnRows(sqlmock.NewRows(noteColumns).
		AddRow("n1", "a", "Math", "spam@example.com", "study_notes/spammer-id/a.pdf", now, 0).
		AddRow("n2", "b", "Math", "spam@example.com", "study_notes/victim-id/secret.pdf", now, 0).
		AddRow("n3", "c", "Math", "spam@example.com", nil, now, 0))
	mock.ExpectBegin()
	mock.ExpectQuery(selectNotesByEmail).WillReturnRows(sqlmock.NewRows(noteColumns).
		AddRow("n1", "a", "Math", "spam@example.com", "study_notes/spammer-id/a.pdf", now, 0).
		AddRow("n2", "b", "Math", "spam@example.com", "study_notes/victim-id/secret.pdf", now, 0).
		AddRow("n3", "c", "Math", "spam@example.com", nil, now, 0).
		AddRow("n4", "d", "Math", "spam@example.com", "study_notes/spammer-id/late.pdf", now, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `user_upvotes`")).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `resources`")).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	resp, err := s.PurgeNotes(context.Background(), "spammer-id")
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Deleted)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "victim-id/secret.pdf")
	assert.ElementsMatch(t, []string{"study_notes/spammer-id/a.pdf", "study_notes/spammer-id/late.pdf"}, rs.purged)
	assert.True(t, recordsPendingAtFirstRemove)
	assert.Equal(t, 1, subjects.invalidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminService_PurgeNotesUnknownUser(t *testing.T) {
	s, mock, _ := newAdminService(t, &recordingStorage{})

	mock.ExpectQuery(selectProfileByIDSQL).WillReturnRows(sqlmock.NewRows(profileColumns))
	_, err := s.PurgeNotes(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
