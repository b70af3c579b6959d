package services

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/yoockh/bikeparts/internal/cache"
	"github.com/yoockh/bikeparts/internal/models"
	mongorepo "github.com/yoockh/bikeparts/internal/repositories/mongo"
	"github.com/yoockh/bikeparts/internal/storage"
	"github.com/yoockh/bikeparts/internal/utils"
)

const (
	fieldName     = "name"
	fieldSlug     = "slug"
	fieldImageURL = "imageUrl"
)

type ProductService interface {
	Create(ctx context.Context, actor string, p models.Document) (*models.InsertResult, error)
	Get(ctx context.Context, id string) (models.Document, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
	Update(ctx context.Context, actor, id string, set models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, actor, id string) (*models.DeleteResult, error)
	UploadImage(ctx context.Context, actor, id, fileName, contentType string, r io.Reader) (string, error)
}

type productService struct {
	products mongorepo.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
	uploader storage.Uploader
	audit    AuditService
}

// NewProductService takes an optional uploader; without one image uploads
// report Unavailable.
func NewProductService(products mongorepo.ProductRepository, c cache.Cache, cacheTTL time.Duration, uploader storage.Uploader, audit AuditService) ProductService {
	if c == nil {
		c = cache.Nop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &productService{products: products, cache: c, cacheTTL: cacheTTL, uploader: uploader, audit: audit}
}

func (s *productService) Create(ctx context.Context, actor string, p models.Document) (*models.InsertResult, error) {
	const op = "ProductService.Create"

	// any body is a product, including an empty one
	doc := withSlug(models.Without(p, models.FieldID))

	res, err := s.products.Insert(ctx, doc)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create product", err)
	}
	s.audit.Record(ctx, AuditRecord{
		Actor:      actor,
		Action:     models.AuditCreate,
		Resource:   "products",
		ResourceID: idString(res.InsertedID),
		Payload:    doc,
	})
	return res, nil
}

func (s *productService) Get(ctx context.Context, id string) (models.Document, error) {
	const op = "ProductService.Get"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}

	key := cache.ProductKey(oid.Hex())
	var cached models.Document
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "product not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get product", err)
	}
	_ = s.cache.SetJSON(ctx, key, p, s.cacheTTL)
	return p, nil
}

func (s *productService) List(ctx context.Context, limit int64) ([]models.Document, error) {
	const op = "ProductService.List"

	out, err := s.products.List(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list products", err)
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, actor, id string, set models.Document) (*models.UpdateResult, error) {
	const op = "ProductService.Update"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	set = models.Without(set, models.FieldID)
	if err := requireFields(op, set); err != nil {
		return nil, err
	}
	set = withSlug(set)

	res, err := s.products.Update(ctx, oid, set)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update product", err)
	}
	_ = s.cache.Del(ctx, cache.ProductKey(oid.Hex()))
	s.audit.Record(ctx, AuditRecord{
		Actor:      actor,
		Action:     models.AuditUpdate,
		Resource:   "products",
		ResourceID: oid.Hex(),
		Payload:    set,
	})
	return res, nil
}

func (s *productService) Delete(ctx context.Context, actor, id string) (*models.DeleteResult, error) {
	const op = "ProductService.Delete"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.products.Delete(ctx, oid)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to delete product", err)
	}
	_ = s.cache.Del(ctx, cache.ProductKey(oid.Hex()))
	s.audit.Record(ctx, AuditRecord{
		Actor:      actor,
		Action:     models.AuditDelete,
		Resource:   "products",
		ResourceID: oid.Hex(),
	})
	return res, nil
}

// UploadImage stores the image under products/<id>/ and records its public
// URL on the product.
func (s *productService) UploadImage(ctx context.Context, actor, id, fileName, contentType string, r io.Reader) (string, error) {
	const op = "ProductService.UploadImage"

	if s.uploader == nil {
		return "", utils.E(utils.CodeUnavailable, op, "image uploads are not configured", nil)
	}
	oid, err := parseID(op, id)
	if err != nil {
		return "", err
	}
	if _, err := s.products.FindByID(ctx, oid); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "product not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to get product", err)
	}

	object := path.Join("products", oid.Hex(), uuid.NewString()+path.Ext(fileName))
	url, err := s.uploader.Upload(ctx, object, contentType, r)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to upload image", err)
	}

	set := models.Document{fieldImageURL: url}
	if _, err := s.products.Update(ctx, oid, set); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to save image url", err)
	}
	_ = s.cache.Del(ctx, cache.ProductKey(oid.Hex()))
	s.audit.Record(ctx, AuditRecord{
		Actor:      actor,
		Action:     models.AuditUpdate,
		Resource:   "products",
		ResourceID: oid.Hex(),
		Payload:    set,
	})
	return url, nil
}

// withSlug derives a URL slug from the product name unless one is given.
func withSlug(d models.Document) models.Document {
	if _, ok := d[fieldSlug]; ok {
		return d
	}
	if name := models.StringField(d, fieldName); name != "" {
		d[fieldSlug] = slug.Make(name)
	}
	return d
}
