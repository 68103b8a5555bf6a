package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación del puerto SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste la cabecera del suministro. Solo lo invoca el motor de
// intake dentro de su transacción.
func (r *SupplyRepo) Create(supply *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, company_id, supplier_id, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		supply.ID, supply.CompanyID, supply.SupplierID, supply.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del suministro.
func (r *SupplyRepo) CreateLine(line *entity.SupplyLine) error {
	query := `
		INSERT INTO supply_lines (id, supply_id, product_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SupplyID, line.ProductID, line.Quantity, line.Position,
	)
	if err != nil {
		return fmt.Errorf("insert supply line: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene un suministro acotado por empresa, con líneas y
// productos resueltos. (nil, nil) cubre inexistente y de otra empresa.
func (r *SupplyRepo) GetByIDAndCompany(id, companyID string) (*entity.Supply, error) {
	query := `
		SELECT id, company_id, supplier_id, created_at
		FROM supplies WHERE id = $1 AND company_id = $2`
	var s entity.Supply
	err := r.q.QueryRow(context.Background(), query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.SupplierID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	if err := r.loadLines([]*entity.Supply{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByCompany lista los suministros de la empresa, más recientes primero,
// con líneas cargadas.
func (r *SupplyRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supply, error) {
	query := `
		SELECT id, company_id, supplier_id, created_at
		FROM supplies WHERE company_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.SupplierID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga en una sola consulta las líneas (con su producto) de los
// suministros dados, respetando el orden de entrada (position).
func (r *SupplyRepo) loadLines(supplies []*entity.Supply) error {
	if len(supplies) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Supply, len(supplies))
	ids := make([]string, 0, len(supplies))
	for _, s := range supplies {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	query := `
		SELECT l.id, l.supply_id, l.product_id, l.quantity, l.position,
		       p.id, p.storage_id, p.title, p.quantity, p.purchase_price, p.created_at, p.updated_at
		FROM supply_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.supply_id = ANY($1)
		ORDER BY l.supply_id, l.position`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load supply lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SupplyLine
		var p entity.Product
		if err := rows.Scan(
			&l.ID, &l.SupplyID, &l.ProductID, &l.Quantity, &l.Position,
			&p.ID, &p.StorageID, &p.Title, &p.Quantity, &p.PurchasePrice, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan supply line: %w", err)
		}
		l.Product = &p
		if s, ok := byID[l.SupplyID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	return rows.Err()
}
