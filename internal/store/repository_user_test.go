package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

var testNow = time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			dialect:            DialectPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
		ids:    fixedIDs("generated-id"),
		now:    func() time.Time { return testNow },
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

// ─── FindByUsername / FindByID ───────────────────────────────────────────────

func TestFindByUsername_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	lastLogin := testNow.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("alice").
		WillReturnRows(userRows().AddRow("id-1", "alice", "hash", "USER", "", false, lastLogin, testNow, nil))

	user, err := repo.FindByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "id-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, "hash", *user.PasswordHash)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsActive)
	require.NotNil(t, user.LastLoginAt)
	assert.True(t, lastLogin.Equal(*user.LastLoginAt))
	assert.Nil(t, user.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername_NullPasswordHash(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE username").
		WillReturnRows(userRows().AddRow("id-1", "ghost", nil, "USER", "", true, nil, testNow, nil))

	user, err := repo.FindByUsername(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, user.PasswordHash)
	assert.False(t, user.HasPassword())
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("nobody").
		WillReturnRows(userRows())

	_, err := repo.FindByUsername(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByID_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("id-1").
		WillReturnError(errors.New("db network error"))

	_, err := repo.FindByID(context.Background(), "id-1")

	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestFindByID_RetriesTransientErrors(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE id").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("FROM users WHERE id").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))
	mock.ExpectQuery("FROM users WHERE id").
		WillReturnRows(userRows().AddRow("id-1", "alice", "hash", "ADMIN", "", true, nil, testNow, nil))

	user, err := repo.FindByID(context.Background(), "id-1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_DoesNotRetryPermanentErrors(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE id").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.FindByID(context.Background(), "id-1")

	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── Save ────────────────────────────────────────────────────────────────────

func TestSave_InsertAssignsIDAndCreatedAt(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	hash := "hash"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (id,username,password_hash,role,email,is_active,last_login_at,created_at,updated_at)")).
		WithArgs("generated-id", "alice", "hash", "USER", "", true, nil, testNow, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Save(context.Background(), models.User{Username: "alice", PasswordHash: &hash, IsActive: true})

	require.NoError(t, err)
	assert.Equal(t, "generated-id", saved.ID)
	assert.Equal(t, testNow, saved.CreatedAt)
	assert.Equal(t, models.RoleUser, saved.Role, "role defaults to USER")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertUniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Save(context.Background(), models.User{Username: "alice"})

	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestSave_UpdateExisting(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	updated := testNow

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET email = $1, is_active = $2, last_login_at = $3, password_hash = $4, role = $5, updated_at = $6 WHERE id = $7")).
		WithArgs("", true, nil, nil, "ADMIN", sqlmock.AnyArg(), "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Save(context.Background(), models.User{
		ID: "id-1", Username: "alice", Role: models.RoleAdmin, IsActive: true, UpdatedAt: &updated,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, saved.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UpdateMissingRowInserts(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("id-9", "carol", nil, "USER", "", false, nil, testNow, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Save(context.Background(), models.User{ID: "id-9", Username: "carol"})

	require.NoError(t, err)
	assert.Equal(t, "id-9", saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_UpdateError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Save(context.Background(), models.User{ID: "id-1", Username: "alice"})

	assert.ErrorIs(t, err, ErrExecutingStatement)
}

// ─── listings ────────────────────────────────────────────────────────────────

func TestFindAll(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY username ASC")).
		WillReturnRows(userRows().
			AddRow("id-1", "admin", "h", "ADMIN", "", true, nil, testNow, nil).
			AddRow("id-2", "user", "h", "USER", "", true, nil, testNow, nil))

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "user", users[1].Username)
}

func TestFindAll_Empty(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnRows(userRows())

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestFindAll_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1")) // wrong shape

	_, err := repo.FindAll(context.Background())

	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestFindPage(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	req := models.PageRequest{Page: 1, Size: 2}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY username ASC LIMIT 2 OFFSET 2")).
		WillReturnRows(userRows().
			AddRow("id-3", "carol", "h", "USER", "", true, nil, testNow, nil).
			AddRow("id-4", "dave", "h", "USER", "", true, nil, testNow, nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	page, err := repo.FindPage(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameContaining(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	req := models.PageRequest{Page: 0, Size: 10}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(username) LIKE $1 ESCAPE '\' ORDER BY username ASC LIMIT 10 OFFSET 0`)).
		WithArgs("%test%").
		WillReturnRows(userRows().AddRow("id-5", "testuser1", "h", "USER", "", true, nil, testNow, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE LOWER(username) LIKE $1 ESCAPE '\'`)).
		WithArgs("%test%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	page, err := repo.FindByUsernameContaining(context.Background(), "TEST", req)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "testuser1", page.Items[0].Username)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── counts ──────────────────────────────────────────────────────────────────

func TestCounts(t *testing.T) {
	since := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(r *userRepository) (int64, error)
	}{
		{
			name:  "count",
			query: "SELECT COUNT(*) FROM users",
			call:  func(r *userRepository) (int64, error) { return r.Count(context.Background()) },
		},
		{
			name:  "by active",
			query: "SELECT COUNT(*) FROM users WHERE is_active = $1",
			args:  []driver.Value{false},
			call:  func(r *userRepository) (int64, error) { return r.CountByIsActive(context.Background(), false) },
		},
		{
			name:  "by role",
			query: "SELECT COUNT(*) FROM users WHERE role = $1",
			args:  []driver.Value{"ADMIN"},
			call:  func(r *userRepository) (int64, error) { return r.CountByRole(context.Background(), "ADMIN") },
		},
		{
			name:  "by last login",
			query: "SELECT COUNT(*) FROM users WHERE last_login_at > $1",
			args:  []driver.Value{since},
			call: func(r *userRepository) (int64, error) {
				return r.CountByLastLoginAtAfter(context.Background(), since)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if tt.args != nil {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

			n, err := tt.call(repo)

			require.NoError(t, err)
			assert.Equal(t, int64(7), n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCount_Error(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))

	_, err := repo.Count(context.Background())

	assert.ErrorIs(t, err, ErrExecutingQuery)
}
