package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/response"
	"github.com/danuartha/go-commerce-api/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type productListQuery struct {
	Page        int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit       int    `form:"limit,default=12" binding:"omitempty,gte=1,lte=100"`
	Category    string `form:"category" binding:"omitempty,uuid"`
	Search      string `form:"search"`
	MinPrice    string `form:"minPrice"`
	MaxPrice    string `form:"maxPrice"`
	IsAffiliate *bool  `form:"isAffiliate"`
	Sort        string `form:"sort" binding:"omitempty,oneof=name price -price rating createdAt -createdAt"`
}

type productRequest struct {
	Name             string           `json:"name" binding:"required,min=2,max=200"`
	Description      string           `json:"description" binding:"required"`
	ShortDescription string           `json:"shortDescription"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice"`
	SKU              string           `json:"sku" binding:"required,max=64"`
	CategoryID       string           `json:"categoryId" binding:"required,uuid"`
	Subcategory      string           `json:"subcategory"`
	Brand            string           `json:"brand"`
	Images           []string         `json:"images" binding:"omitempty,dive,url"`
	Thumbnail        string           `json:"thumbnail" binding:"omitempty,url"`
	Stock            int              `json:"stock" binding:"gte=0"`
	IsActive         *bool            `json:"isActive"`
	IsAffiliate      bool             `json:"isAffiliate"`
	AffiliateLink    string           `json:"affiliateLink" binding:"omitempty,url"`
	Tags             []string         `json:"tags"`
}

type productUpdateRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=2,max=200"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	Price            *decimal.Decimal `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compareAtPrice"`
	SKU              *string          `json:"sku" binding:"omitempty,max=64"`
	CategoryID       *string          `json:"categoryId" binding:"omitempty,uuid"`
	Subcategory      *string          `json:"subcategory"`
	Brand            *string          `json:"brand"`
	Images           *[]string        `json:"images" binding:"omitempty,dive,url"`
	Thumbnail        *string          `json:"thumbnail" binding:"omitempty,url"`
	Stock            *int             `json:"stock" binding:"omitempty,gte=0"`
	IsActive         *bool            `json:"isActive"`
	IsAffiliate      *bool            `json:"isAffiliate"`
	AffiliateLink    *string          `json:"affiliateLink" binding:"omitempty,url"`
	Tags             *[]string        `json:"tags"`
}

// List is the public catalog listing: only active products, filterable and
// paginated.
func (h *ProductHandler) List(c *gin.Context) {
	var q productListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 12
	}

	f := repo.ProductFilter{
		Page:        q.Page,
		Limit:       q.Limit,
		CategoryID:  q.Category,
		Search:      q.Search,
		IsAffiliate: q.IsAffiliate,
		Sort:        q.Sort,
		ActiveOnly:  true,
	}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid minPrice", nil)
		return
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid maxPrice", nil)
		return
	}

	items, total, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("product list failed")
		response.Fail(c, http.StatusInternalServerError, "could not list products", nil)
		return
	}
	pages := (total + q.Limit - 1) / q.Limit
	response.Paged(c, items, len(items), total, q.Page, pages)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("not positive")
	}
	return n, nil
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil, errors.New("invalid price")
	}
	return &d, nil
}

// Get returns the product by id. Inactive products 404 for every caller; the
// admin surface for them is the update endpoint.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Fail(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("product get failed")
		response.Fail(c, http.StatusInternalServerError, "could not load product", nil)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 10
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			size = n
		}
	}
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("product search failed")
		response.Fail(c, http.StatusInternalServerError, "could not search products", nil)
		return
	}
	response.List(c, hits, len(hits))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Price.IsNegative() {
		response.Fail(c, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	p := &entity.Product{
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		CompareAtPrice:   req.CompareAtPrice,
		SKU:              req.SKU,
		CategoryID:       req.CategoryID,
		Subcategory:      req.Subcategory,
		Brand:            req.Brand,
		Images:           req.Images,
		Thumbnail:        req.Thumbnail,
		Stock:            req.Stock,
		IsActive:         true,
		IsAffiliate:      req.IsAffiliate,
		AffiliateLink:    req.AffiliateLink,
		Tags:             req.Tags,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.Svc.Create(c.Request.Context(), p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			response.Fail(c, http.StatusBadRequest, "sku already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("product create failed")
		response.Fail(c, http.StatusInternalServerError, "could not create product", nil)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		response.Fail(c, http.StatusBadRequest, "price must not be negative", nil)
		return
	}

	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Fail(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("product load failed")
		response.Fail(c, http.StatusInternalServerError, "could not update product", nil)
		return
	}

	applyProductUpdate(p, &req)

	if err := h.Svc.Update(c.Request.Context(), p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			response.Fail(c, http.StatusBadRequest, "sku already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("product update failed")
		response.Fail(c, http.StatusInternalServerError, "could not update product", nil)
		return
	}
	response.OK(c, p)
}

func applyProductUpdate(p *entity.Product, req *productUpdateRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ShortDescription != nil {
		p.ShortDescription = *req.ShortDescription
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		p.CompareAtPrice = req.CompareAtPrice
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.CategoryID != nil {
		p.CategoryID = *req.CategoryID
	}
	if req.Subcategory != nil {
		p.Subcategory = *req.Subcategory
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Thumbnail != nil {
		p.Thumbnail = *req.Thumbnail
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsAffiliate != nil {
		p.IsAffiliate = *req.IsAffiliate
	}
	if req.AffiliateLink != nil {
		p.AffiliateLink = *req.AffiliateLink
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Fail(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("product delete failed")
		response.Fail(c, http.StatusInternalServerError, "could not delete product", nil)
		return
	}
	response.Message(c, "product deleted")
}

// UploadImage accepts a multipart image and appends it to the product gallery.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "could not read image file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	contentType := file.Header.Get("Content-Type")
	p, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), src, file.Filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Fail(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("product image upload failed")
		response.Fail(c, http.StatusInternalServerError, "could not upload image", nil)
		return
	}
	response.OK(c, p)
}
