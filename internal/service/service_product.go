package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/adapter"
	"github.com/MKhiriev/warehouse-keeper/internal/config"
	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/store"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/internal/validators"
	"github.com/MKhiriev/warehouse-keeper/models"
)

// skuSuffixLength is the number of product ID characters used in a
// generated SKU.
const skuSuffixLength = 8

// productService manages products on behalf of their owners.
// Every operation on an existing product checks that the caller owns it.
type productService struct {
	productRepository store.ProductRepository
	images            adapter.ImageStorage
	validator         validators.Validator
	idGenerator       IDGenerator

	imageFolder string

	now    func() time.Time
	logger *logger.Logger
}

func NewProductService(
	productRepository store.ProductRepository,
	images adapter.ImageStorage,
	validator validators.Validator,
	cfg config.Images,
	logger *logger.Logger,
) ProductService {
	return &productService{
		productRepository: productRepository,
		images:            images,
		validator:         validator,
		idGenerator:       utils.NewUUIDGenerator(),
		imageFolder:       cfg.Folder,
		now:               time.Now,
		logger:            logger,
	}
}

func (p *productService) CreateProduct(ctx context.Context, userID string, req models.ProductRequest, image *models.ImageUpload) (models.Product, error) {
	log := logger.FromContext(ctx)

	req = trimProductRequest(req)
	if err := p.validator.Validate(ctx, req); err != nil {
		return models.Product{}, validationError(err)
	}

	productImage, err := p.uploadImage(ctx, image)
	if err != nil {
		return models.Product{}, err
	}

	now := p.now().UTC()
	product := models.Product{
		ID:          p.idGenerator.Generate(),
		UserID:      userID,
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Description: req.Description,
		Image:       productImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.SKU == "" {
		product.SKU = generateSKU(product.ID)
	}

	createdProduct, err := p.productRepository.CreateProduct(ctx, product)
	if err != nil {
		log.Err(err).Str("func", "*productService.CreateProduct").Msg("product creation failed")
		return models.Product{}, fmt.Errorf("product creation failed: %w", err)
	}

	log.Info().Str("func", "*productService.CreateProduct").Str("product_id", createdProduct.ID).Msg("product created")
	return createdProduct, nil
}

// ListProducts returns the products of userID, newest first.
func (p *productService) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	products, err := p.productRepository.ListProductsByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productService.ListProducts").Msg("listing products failed")
		return nil, fmt.Errorf("listing products failed: %w", err)
	}

	return products, nil
}

func (p *productService) GetProduct(ctx context.Context, userID, productID string) (models.Product, error) {
	product, err := p.productRepository.FindProductByID(ctx, productID)
	if errors.Is(err, store.ErrProductNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productService.GetProduct").Msg("product search failed")
		return models.Product{}, fmt.Errorf("product search failed: %w", err)
	}

	if product.UserID != userID {
		return models.Product{}, ErrProductAccessDenied
	}

	return product, nil
}

// UpdateProduct replaces the editable fields of an owned product. The SKU
// and the owner never change; the image changes only if a new one is given.
func (p *productService) UpdateProduct(ctx context.Context, userID, productID string, req models.ProductRequest, image *models.ImageUpload) (models.Product, error) {
	log := logger.FromContext(ctx)

	req = trimProductRequest(req)
	if err := p.validator.Validate(ctx, req); err != nil {
		return models.Product{}, validationError(err)
	}

	product, err := p.GetProduct(ctx, userID, productID)
	if err != nil {
		return models.Product{}, err
	}

	productImage, err := p.uploadImage(ctx, image)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Quantity = req.Quantity
	product.Price = req.Price
	product.Description = req.Description
	if !productImage.IsEmpty() {
		product.Image = productImage
	}
	product.UpdatedAt = p.now().UTC()

	updatedProduct, err := p.productRepository.UpdateProduct(ctx, product)
	if errors.Is(err, store.ErrProductNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*productService.UpdateProduct").Msg("product update failed")
		return models.Product{}, fmt.Errorf("product update failed: %w", err)
	}

	return updatedProduct, nil
}

func (p *productService) DeleteProduct(ctx context.Context, userID, productID string) error {
	if _, err := p.GetProduct(ctx, userID, productID); err != nil {
		return err
	}

	err := p.productRepository.DeleteProduct(ctx, userID, productID)
	if errors.Is(err, store.ErrProductNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productService.DeleteProduct").Msg("product deletion failed")
		return fmt.Errorf("product deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*productService.DeleteProduct").Str("product_id", productID).Msg("product deleted")
	return nil
}

// uploadImage validates and stores image. A nil image yields an empty
// ProductImage and no error.
func (p *productService) uploadImage(ctx context.Context, image *models.ImageUpload) (models.ProductImage, error) {
	if image == nil {
		return models.ProductImage{}, nil
	}

	if err := p.validator.Validate(ctx, image); err != nil {
		return models.ProductImage{}, validationError(err)
	}
	if p.images == nil {
		return models.ProductImage{}, ErrImageUploadDisabled
	}

	fileName := filepath.Base(image.FileName)
	key := path.Join(p.imageFolder, p.idGenerator.Generate()+"-"+fileName)

	location, err := p.images.Upload(ctx, key, image.ContentType, image.Content)
	if errors.Is(err, adapter.ErrImageStorageDisabled) {
		return models.ProductImage{}, ErrImageUploadDisabled
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*productService.uploadImage").Str("key", key).Msg("image upload failed")
		return models.ProductImage{}, fmt.Errorf("%w: %w", ErrImageUpload, err)
	}

	return models.ProductImage{
		FileName: fileName,
		FilePath: location,
		FileType: image.ContentType,
		FileSize: utils.FormatFileSize(image.Size, 2),
	}, nil
}

func trimProductRequest(req models.ProductRequest) models.ProductRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	return req
}

// generateSKU derives a stock keeping unit from the tail of a product ID.
// The head of a UUIDv7 is its timestamp and is shared by ids issued close
// together, the tail is random.
func generateSKU(productID string) string {
	tail := strings.ReplaceAll(productID, "-", "")
	if len(tail) > skuSuffixLength {
		tail = tail[len(tail)-skuSuffixLength:]
	}
	return "SKU-" + strings.ToUpper(tail)
}
