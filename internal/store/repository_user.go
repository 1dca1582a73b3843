package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

// idGenerator assigns identifiers to new records.
type idGenerator interface {
	Generate() string
}

// userRepository is the SQL implementation of [UserRepository] for
// PostgreSQL and SQLite. Queries are built with squirrel using the dialect's
// placeholder format and retried on transient driver errors.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB

	ids idGenerator
	now func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect.String()).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// FindByUsername implements [UserRepository].
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	query, args, err := buildFindUserByUsernameQuery(r.db.statementBuilder(), username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindByUsername", query, args)
}

// FindByID implements [UserRepository].
func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	query, args, err := buildFindUserByIDQuery(r.db.statementBuilder(), id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindByID", query, args)
}

// Save implements [UserRepository]. A record with an ID that is not stored
// yet is inserted under that ID.
func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		return r.insert(ctx, user)
	}

	query, args, err := buildUpdateUserQuery(r.db.statementBuilder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.Save").Str("id", user.ID).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return r.insert(ctx, user)
	}

	return user, nil
}

func (r *userRepository) insert(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" {
		user.ID = r.ids.Generate()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query, args, err := buildInsertUserQuery(r.db.statementBuilder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.insert").Str("username", user.Username).Msg("error inserting user")
		if r.db.errorClassificator != nil && r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindAll implements [UserRepository].
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	query, args, err := buildFindAllUsersQuery(r.db.statementBuilder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findMany(ctx, "*userRepository.FindAll", query, args)
}

// FindPage implements [UserRepository].
func (r *userRepository) FindPage(ctx context.Context, req models.PageRequest) (models.Page[models.User], error) {
	return r.findPage(ctx, "*userRepository.FindPage", nil, req)
}

// FindByUsernameContaining implements [UserRepository].
func (r *userRepository) FindByUsernameContaining(ctx context.Context, substring string, req models.PageRequest) (models.Page[models.User], error) {
	return r.findPage(ctx, "*userRepository.FindByUsernameContaining", usernameContains(substring), req)
}

// Count implements [UserRepository].
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, nil)
}

// CountByIsActive implements [UserRepository].
func (r *userRepository) CountByIsActive(ctx context.Context, isActive bool) (int64, error) {
	return r.count(ctx, sq.Eq{"is_active": isActive})
}

// CountByRole implements [UserRepository].
func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.count(ctx, sq.Eq{"role": role})
}

// CountByLastLoginAtAfter implements [UserRepository].
func (r *userRepository) CountByLastLoginAtAfter(ctx context.Context, t time.Time) (int64, error) {
	return r.count(ctx, sq.Gt{"last_login_at": t.UTC()})
}

func (r *userRepository) findPage(ctx context.Context, fn string, filter sq.Sqlizer, req models.PageRequest) (models.Page[models.User], error) {
	query, args, err := buildFindUsersPageQuery(r.db.statementBuilder(), filter, req)
	if err != nil {
		return models.Page[models.User]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users, err := r.findMany(ctx, fn, query, args)
	if err != nil {
		return models.Page[models.User]{}, err
	}

	total, err := r.count(ctx, filter)
	if err != nil {
		return models.Page[models.User]{}, err
	}

	return models.NewPage(users, req, total), nil
}

func (r *userRepository) findOne(ctx context.Context, fn, query string, args []any) (models.User, error) {
	var user models.User
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		var err error
		user, err = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) findMany(ctx context.Context, fn, query string, args []any) ([]models.User, error) {
	var users []models.User
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = make([]models.User, 0)
		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			users = append(users, user)
		}

		return rows.Err()
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

func (r *userRepository) count(ctx context.Context, filter sq.Sqlizer) (int64, error) {
	query, args, err := buildCountUsersQuery(r.db.statementBuilder(), filter)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.count").Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row in [userColumns] order.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user         models.User
		passwordHash sql.NullString
		lastLoginAt  sql.NullTime
		updatedAt    sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&passwordHash,
		&user.Role,
		&user.Email,
		&user.IsActive,
		&lastLoginAt,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if passwordHash.Valid {
		user.PasswordHash = &passwordHash.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time.UTC()
		user.LastLoginAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		user.UpdatedAt = &t
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}
