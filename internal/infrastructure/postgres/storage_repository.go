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

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación del puerto StorageRepository sobre PostgreSQL (usable con pool o tx).
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

// Create persiste el almacén. El UNIQUE sobre company_id garantiza como
// máximo uno por empresa; devuelve domain.ErrStorageExists si ya hay.
func (r *StorageRepo) Create(storage *entity.Storage) error {
	query := `
		INSERT INTO storages (id, company_id, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.CompanyID, storage.Address, storage.CreatedAt, storage.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStorageExists
		}
		return fmt.Errorf("insert storage: %w", err)
	}
	return nil
}

// GetByCompany obtiene el almacén de una empresa, o (nil, nil) si no tiene.
func (r *StorageRepo) GetByCompany(companyID string) (*entity.Storage, error) {
	query := `
		SELECT id, company_id, address, created_at, updated_at
		FROM storages WHERE company_id = $1`
	var s entity.Storage
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage: %w", err)
	}
	return &s, nil
}

// Update actualiza el almacén existente.
func (r *StorageRepo) Update(storage *entity.Storage) error {
	query := `
		UPDATE storages SET address = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.Address, storage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}
	return nil
}

// Delete elimina el almacén por ID. Sus productos caen por FK ON DELETE CASCADE.
func (r *StorageRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}
