package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/entity"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// La pertenencia a la empresa se resuelve con un JOIN al almacén del producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.storage_id, p.title, p.quantity, p.purchase_price, p.created_at, p.updated_at`

// Create persiste un nuevo producto. Quantity inicia en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, storage_id, title, quantity, purchase_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StorageID, product.Title, product.Quantity,
		product.PurchasePrice, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene un producto cuyo almacén pertenece a la empresa.
// (nil, nil) cubre "no existe" y "de otra empresa" por igual.
func (r *ProductRepo) GetByIDAndCompany(id, companyID string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN storages s ON s.id = p.storage_id
		WHERE p.id = $1 AND s.company_id = $2`
	return r.scanOne(query, id, companyID)
}

// GetForUpdateInCompany obtiene el producto y bloquea su fila
// (SELECT FOR UPDATE OF p) para serializar incrementos de stock concurrentes.
func (r *ProductRepo) GetForUpdateInCompany(id, companyID string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN storages s ON s.id = p.storage_id
		WHERE p.id = $1 AND s.company_id = $2
		FOR UPDATE OF p`
	return r.scanOne(query, id, companyID)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.StorageID, &p.Title, &p.Quantity, &p.PurchasePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// AddQuantity incrementa el stock del producto. El CHECK (quantity >= 0) de
// la tabla respalda el invariante de stock no negativo.
func (r *ProductRepo) AddQuantity(id string, delta int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("add product quantity: %w", err)
	}
	return nil
}

// Update actualiza título y precio de compra. No toca quantity: el stock
// solo lo mueve el motor de suministros vía AddQuantity.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET title = $2, purchase_price = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Title, product.PurchasePrice, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista productos de la empresa (vía su almacén) con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN storages s ON s.id = p.storage_id
		WHERE s.company_id = $1
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.StorageID, &p.Title, &p.Quantity, &p.PurchasePrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto acotado por empresa (vía su almacén).
func (r *ProductRepo) Delete(id, companyID string) error {
	query := `
		DELETE FROM products p
		USING storages s
		WHERE p.id = $1 AND s.id = p.storage_id AND s.company_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, companyID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
