package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aglamorousfortuneteller/crm-api/internal/application/supply"
	"github.com/Aglamorousfortuneteller/crm-api/internal/application/usecase"
	"github.com/Aglamorousfortuneteller/crm-api/internal/domain/repository"
)

// Ensure TxRunner implements supply.TxRunner and usecase.CompanyTxRunner.
var _ supply.TxRunner = (*TxRunner)(nil)
var _ usecase.CompanyTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del intake atados a
// la tx y hace Commit o Rollback. El Rollback diferido es inocuo tras un
// Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	supplyRepo := NewSupplyRepository(tx)
	productRepo := NewProductRepository(tx)
	supplierRepo := NewSupplierRepository(tx)

	if err := fn(supplyRepo, productRepo, supplierRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCompany inicia una transacción con los repos de empresa y usuario
// (crear empresa + vincular dueño, o desvincular usuarios + eliminar).
func (r *TxRunner) RunCompany(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(companyRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
