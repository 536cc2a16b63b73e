package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"veriauth/internal/models"
)

// ErrDuplicateEmail is the authoritative duplicate signal: the pre-check in the
// service is a read-then-write race, the unique index underneath is not.
var ErrDuplicateEmail = errors.New("email already exists")

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password_hash, is_verified, verification_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRow(q,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsVerified,
		user.VerificationToken,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

// GetByEmail returns (nil, nil) when no account exists for the email.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
		SELECT id, name, email, password_hash, is_verified, verification_token
		FROM users
		WHERE email = $1
	`
	u := &models.User{}
	var vt sql.NullString
	err := r.DB.QueryRow(q, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVerified, &vt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user get by email: %w", err)
	}
	if vt.Valid {
		s := vt.String
		u.VerificationToken = &s
	}
	return u, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET name=$1, password_hash=$2, is_verified=$3, verification_token=$4
		WHERE id=$5
	`
	if _, err := r.DB.Exec(q,
		user.Name,
		user.PasswordHash,
		user.IsVerified,
		user.VerificationToken,
		user.ID,
	); err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}
