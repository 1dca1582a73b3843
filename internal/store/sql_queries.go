package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-directory/models"
)

const usersTable = "users"

// userColumns is the column order shared by every SELECT and INSERT and by
// [scanUser].
var userColumns = []string{
	"id",
	"username",
	"password_hash",
	"role",
	"email",
	"is_active",
	"last_login_at",
	"created_at",
	"updated_at",
}

// likeEscaper escapes LIKE wildcards so a search substring matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// usernameContains matches usernames containing substring, ignoring case.
func usernameContains(substring string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(substring)) + "%"
	return sq.Expr(`LOWER(username) LIKE ? ESCAPE '\'`, pattern)
}

func selectUsers(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(userColumns...).From(usersTable)
}

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return selectUsers(b).Where(sq.Eq{"username": username}).ToSql()
}

func buildFindUserByIDQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return selectUsers(b).Where(sq.Eq{"id": id}).ToSql()
}

func buildFindAllUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return selectUsers(b).OrderBy("username ASC").ToSql()
}

// buildFindUsersPageQuery selects one page ordered by username. A nil filter
// selects all users.
func buildFindUsersPageQuery(b sq.StatementBuilderType, filter sq.Sqlizer, req models.PageRequest) (string, []any, error) {
	if req.Page < 0 || req.Size < 1 {
		return "", nil, fmt.Errorf("%w: page %d, size %d out of range", ErrBuildingSQLQuery, req.Page, req.Size)
	}

	query := selectUsers(b)
	if filter != nil {
		query = query.Where(filter)
	}

	return query.
		OrderBy("username ASC").
		Limit(uint64(req.Size)).
		Offset(uint64(req.Offset())).
		ToSql()
}

// buildCountUsersQuery counts users matching filter; a nil filter counts all.
func buildCountUsersQuery(b sq.StatementBuilderType, filter sq.Sqlizer) (string, []any, error) {
	query := b.Select("COUNT(*)").From(usersTable)
	if filter != nil {
		query = query.Where(filter)
	}

	return query.ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.ID,
			user.Username,
			user.PasswordHash,
			user.Role,
			user.Email,
			user.IsActive,
			utcPtr(user.LastLoginAt),
			user.CreatedAt.UTC(),
			utcPtr(user.UpdatedAt),
		).
		ToSql()
}

// buildUpdateUserQuery rewrites every mutable column of the record. The
// username and creation time are immutable.
func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(usersTable).
		SetMap(map[string]any{
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"email":         user.Email,
			"is_active":     user.IsActive,
			"last_login_at": utcPtr(user.LastLoginAt),
			"updated_at":    utcPtr(user.UpdatedAt),
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

// utcPtr normalises optional timestamps to UTC; TIMESTAMP columns carry no
// zone.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
