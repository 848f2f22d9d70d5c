package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles account lookup and login bookkeeping against the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindUserByUsername retrieves an account by its unique username.
//
// The permission list is not persisted: it is a pure projection of the
// stored role and team, rebuilt on every load so that table-side role
// changes take effect on the next login.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	var lastLogin sql.NullTime
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := row.Scan(&user.UserID, &user.Username, &user.Email, &user.Team, &user.Role, &user.PasswordHash, &user.CreatedAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if lastLogin.Valid {
		user.LastLoginAt = lastLogin.Time
	}
	user.Permissions = access.PermissionsForRole(user.Role, user.Team)

	return user, nil
}

// TouchLastLogin stamps the user's last_login_at with the current time.
func (r *userRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, touchLastLogin, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.TouchLastLogin").Msg("error updating last login")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
