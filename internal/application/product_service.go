package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	Products        repo.ProductRepository
	GCS             *storage.Client
	GCSBucket       string
	ES              *elasticsearch.Client
	ESProductsIndex string
	Logger          *logrus.Logger
}

func NewProductService(products repo.ProductRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Products:        products,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESProductsIndex: esIndex,
		Logger:          logger,
	}
}

// List returns a page of products and the total match count across all pages.
func (s *ProductService) List(ctx context.Context, f repo.ProductFilter) ([]entity.Product, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 12
	}
	return s.Products.List(ctx, f)
}

// Get returns the product by id. On the public path inactive products are
// indistinguishable from missing ones.
func (s *ProductService) Get(ctx context.Context, id string, includeInactive bool) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !includeInactive && !p.IsActive {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *entity.Product) error {
	if err := s.Products.Create(ctx, p); err != nil {
		return err
	}
	_ = s.indexProduct(ctx, p)
	return nil
}

func (s *ProductService) Update(ctx context.Context, p *entity.Product) error {
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	_ = s.indexProduct(ctx, p)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadImage stores the image in GCS under the product's folder and appends
// the public URL to the product's gallery.
func (s *ProductService) UploadImage(ctx context.Context, productID string, r io.Reader, filename, contentType string) (*entity.Product, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", productID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	p.Images = append(p.Images, url)
	if p.Thumbnail == "" {
		p.Thumbnail = url
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexProduct(ctx, p)
	return p, nil
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESProductsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"brand":       p.Brand,
		"tags":        p.Tags,
		"price":       p.Price.InexactFloat64(),
		"is_active":   p.IsActive,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *ProductService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProductsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a full-text query against the product index. It degrades to an
// empty result when Elasticsearch is not configured.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "brand", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProductsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
