package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores users in PostgreSQL. A unique index on clerk_id
// rejects the second of two concurrent inserts for the same identity.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, clerk_id, username, name, email, phone, location, role, image, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		userID, user.ClerkID, user.Username, user.Name, user.Email, user.Phone, user.Location, user.Role, user.Image, user.CreatedAt.UTC())
	return err
}

// FindByClerkID fetches a user by their identity-provider identifier.
func (r *PostgresRepository) FindByClerkID(ctx context.Context, clerkID string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, clerk_id, username, name, email, phone, location, role, image, created_at
        FROM users WHERE clerk_id = $1`, clerkID)
	return scanUser(row)
}

// UpdateRole patches the role column and nothing else.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id, role string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all users in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, clerk_id, username, name, email, phone, location, role, image, created_at
        FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		user      User
	)
	err := row.Scan(&id, &user.ClerkID, &user.Username, &user.Name, &user.Email, &user.Phone, &user.Location, &user.Role, &user.Image, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

var _ Repository = (*PostgresRepository)(nil)
