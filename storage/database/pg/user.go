package pgdb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	const query = `
INSERT INTO users (id, name, email, role, roll_number, join_date, certificates_earned,
                   events_attended, total_points, "rank", password_hash, created_at, updated_at)
VALUES (:id, :name, :email, :role, :roll_number, :join_date, :certificates_earned,
        :events_attended, :total_points, :rank, :password_hash, :created_at, :updated_at)`

	if _, err := repo.db.NamedExecContext(ctx, query, usr); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	const query = `SELECT * FROM users ORDER BY created_at DESC`

	var users []user.User
	if err := repo.db.SelectContext(ctx, &users, query); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	const query = `SELECT * FROM users WHERE id = $1`

	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, query, id); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	const query = `SELECT * FROM users WHERE email = $1`

	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, query, email); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUserProfile(ctx context.Context, id, name, rollNumber string) (user.User, error) {
	const query = `
UPDATE users
SET name        = COALESCE(NULLIF($2, ''), name),
    roll_number = COALESCE(NULLIF($3, ''), roll_number),
    updated_at  = $4
WHERE id = $1
RETURNING *`

	var usr user.User
	err := repo.db.QueryRowxContext(ctx, query, id, name, rollNumber, time.Now().UTC()).StructScan(&usr)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user profile")
	}
	return usr, nil
}

func (repo *userRepository) SetUserPassword(ctx context.Context, id string, hash []byte) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`

	res, err := repo.db.ExecContext(ctx, query, id, hash, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "setting user password")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}
