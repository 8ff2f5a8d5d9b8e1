package pgsql

import (
	"context"
	"fmt"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

// NewPgxProductRepository creates a new repository for product data.
func NewPgxProductRepository(pool *pgxpool.Pool) ports.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ ports.ProductRepository = (*PgxProductRepository)(nil)

const productColumns = `product_id, product_name, description, category, price, cost_price,
	quantity, min_quantity, unit, barcode, company_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var barcode *string
	err := row.Scan(
		&p.ProductID, &p.ProductName, &p.Description, &p.Category, &p.Price, &p.CostPrice,
		&p.Quantity, &p.MinQuantity, &p.Unit, &barcode, &p.CompanyID,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

// barcodeParam maps an empty barcode to NULL so the unique index only applies to
// real barcodes.
func barcodeParam(barcode string) *string {
	if barcode == "" {
		return nil
	}
	return &barcode
}

func replaceProductSuppliers(ctx context.Context, tx pgx.Tx, productID string, supplierIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_suppliers WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product suppliers: %w", err)
	}
	if len(supplierIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, supplierID := range supplierIDs {
		batch.Queue(`INSERT INTO product_suppliers (product_id, supplier_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, productID, supplierID)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range supplierIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert product supplier link: %w", err)
		}
	}
	return nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, p domain.Product) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, p.ProductID, p.ProductName, p.Description, p.Category, p.Price, p.CostPrice,
			p.Quantity, p.MinQuantity, p.Unit, barcodeParam(p.Barcode), p.CompanyID,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ProductID, translateError(err))
		}
		return replaceProductSuppliers(ctx, tx, p.ProductID, p.SupplierIDs)
	})
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, translateError(err))
	}
	products := []domain.Product{*p}
	if err := r.loadSupplierRefs(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, companyID string, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	if companyID != "" {
		args = append(args, companyID)
		query += fmt.Sprintf(" AND company_id = $%d", len(args))
	}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY product_name"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadSupplierRefs(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PgxProductRepository) loadSupplierRefs(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		ids[i] = products[i].ProductID
		byID[products[i].ProductID] = &products[i]
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT product_id, supplier_id FROM product_suppliers WHERE product_id = ANY($1) ORDER BY supplier_id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load product supplier refs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID, supplierID string
		if err := rows.Scan(&productID, &supplierID); err != nil {
			return fmt.Errorf("failed to scan product supplier ref: %w", err)
		}
		p := byID[productID]
		p.SupplierIDs = append(p.SupplierIDs, supplierID)
	}
	return rows.Err()
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET product_name = $1, description = $2, category = $3, price = $4, cost_price = $5,
			    quantity = $6, min_quantity = $7, unit = $8, barcode = $9,
			    last_updated_at = $10, last_updated_by = $11
			WHERE product_id = $12
		`, p.ProductName, p.Description, p.Category, p.Price, p.CostPrice,
			p.Quantity, p.MinQuantity, p.Unit, barcodeParam(p.Barcode),
			p.LastUpdatedAt, p.LastUpdatedBy, p.ProductID)
		if err != nil {
			return fmt.Errorf("failed to update product %s: %w", p.ProductID, translateError(err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, p.ProductID)
		}
		return replaceProductSuppliers(ctx, tx, p.ProductID, p.SupplierIDs)
	})
}

func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}
