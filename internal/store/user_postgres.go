package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ProgrammerShajib/fullstack/types"
)

const pqUniqueViolation = "23505"

const userColumns = `id, name, email, age, created_at, updated_at`

// PostgresUserRepository handles persistence for users in a relational table.
// Identifiers keep the 24-character hex shape used by the document store.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository constructs a repository backed by db.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	ts := now()
	user := types.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	fields.Apply(&user)

	const query = `
		INSERT INTO users (id, name, email, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		user.ID.Hex(),
		user.Name,
		user.Email,
		user.Age,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return types.User{}, ErrDuplicate
		}
		return types.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id.Hex()))
	if err != nil {
		return types.User{}, mapRowErr("get user", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id primitive.ObjectID, fields types.UserFields) (types.User, error) {
	if err := ValidateFields(fields); err != nil {
		return types.User{}, err
	}

	const query = `
		UPDATE users
		SET name = $1,
			email = $2,
			age = $3,
			updated_at = GREATEST($4, updated_at + interval '1 millisecond')
		WHERE id = $5
		RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		fields.Name,
		fields.Email,
		*fields.Age,
		now(),
		id.Hex(),
	))
	if err != nil {
		return types.User{}, mapRowErr("update user", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (types.User, error) {
	const query = `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id.Hex()))
	if err != nil {
		return types.User{}, mapRowErr("delete user", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (types.User, error) {
	var (
		user  types.User
		rawID string
	)
	if err := row.Scan(
		&rawID,
		&user.Name,
		&user.Email,
		&user.Age,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return types.User{}, err
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return types.User{}, fmt.Errorf("stored id %q: %w", rawID, err)
	}
	user.ID = id
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}

func mapRowErr(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
