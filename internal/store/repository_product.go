package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// productRepository is the SQL implementation of [ProductRepository].
// Update and delete statements always filter by owner as well as by ID,
// so a foreign product behaves exactly like a missing one.
type productRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProductRepository constructs a [ProductRepository] backed by the
// "products" table.
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProductQuery(r.db.builder, product)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Msg("error building insert query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*productRepository.CreateProduct").Bool("retryable", r.db.retryable(err)).Msg("error inserting product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return product, nil
}

func (r *productRepository) FindProductByID(ctx context.Context, productID string) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductByIDQuery(r.db.builder, productID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.FindProductByID").Msg("error building select query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*productRepository.FindProductByID").Bool("retryable", r.db.retryable(err)).Msg("error selecting product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

// ListProductsByUserID returns the products of one owner, newest first.
// An owner without products gets an empty, non-nil slice.
func (r *productRepository) ListProductsByUserID(ctx context.Context, userID string) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductsByUserIDQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProductsByUserID").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	products, err := r.queryProducts(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.ListProductsByUserID").Bool("retryable", r.db.retryable(err)).Msg("error selecting products")
		return nil, err
	}

	return products, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args []any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

// UpdateProduct overwrites the editable fields of an owned product and
// returns the stored record. SKU and owner never change.
func (r *productRepository) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProductQuery(r.db.builder, product)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.UpdateProduct").Msg("error building update query")
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.execOwned(ctx, query, args, "*productRepository.UpdateProduct"); err != nil {
		return models.Product{}, err
	}

	return r.FindProductByID(ctx, product.ID)
}

func (r *productRepository) DeleteProduct(ctx context.Context, userID, productID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteProductQuery(r.db.builder, userID, productID)
	if err != nil {
		log.Err(err).Str("func", "*productRepository.DeleteProduct").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execOwned(ctx, query, args, "*productRepository.DeleteProduct")
}

// execOwned executes a statement filtered by id and owner and maps zero
// affected rows to [ErrProductNotFound].
func (r *productRepository) execOwned(ctx context.Context, query string, args []any, funcName string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Bool("retryable", r.db.retryable(err)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
