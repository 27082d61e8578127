package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is an operator account. Passwords are stored as bcrypt hashes.
type User struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	HashedPassword string
	Role           string
	CreatedAt      time.Time
}

// UserRepo reads and writes operator accounts.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, hashed_password, role, created_at
		 FROM users
		 WHERE email = $1`, email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, hashed_password, role, created_at
		 FROM users
		 WHERE id = $1`, id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

func (r *UserRepo) CreateUser(ctx context.Context, fullName, email, hashedPassword, role string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, hashed_password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, full_name, email, hashed_password, role, created_at`,
		fullName, email, hashedPassword, role,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}
