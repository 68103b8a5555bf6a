package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Aglamorousfortuneteller/crm-api/internal/domain"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Devuelve domain.ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, is_owner, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.IsOwner, nullIfEmpty(user.CompanyID), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy("id = $1", id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getBy("email = $1", email)
}

func (r *UserRepo) getBy(where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, email, username, password_hash, is_owner, company_id, created_at, updated_at
		FROM users WHERE ` + where
	var u entity.User
	var companyID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsOwner, &companyID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if companyID != nil {
		u.CompanyID = *companyID
	}
	return &u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, username = $3, password_hash = $4, is_owner = $5, company_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.IsOwner, nullIfEmpty(user.CompanyID), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// AttachToCompany vincula al usuario con la empresa y fija su flag de dueño.
func (r *UserRepo) AttachToCompany(userID, companyID string, isOwner bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE users SET company_id = $2, is_owner = $3, updated_at = now() WHERE id = $1`,
		userID, companyID, isOwner,
	)
	if err != nil {
		return fmt.Errorf("attach user to company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DetachByCompany desvincula a todos los usuarios de la empresa
// (company_id NULL, is_owner false). Usado al eliminar la empresa.
func (r *UserRepo) DetachByCompany(companyID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET company_id = NULL, is_owner = false, updated_at = now() WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("detach users: %w", err)
	}
	return nil
}

// nullIfEmpty mapea "" a NULL para columnas uuid opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
