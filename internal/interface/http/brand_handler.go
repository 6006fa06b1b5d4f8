package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/pkg/response"
	"github.com/danuartha/go-commerce-api/pkg/validation"
)

type BrandHandler struct {
	Svc    *application.BrandService
	Logger *logrus.Logger
}

func NewBrandHandler(svc *application.BrandService, logger *logrus.Logger) *BrandHandler {
	return &BrandHandler{Svc: svc, Logger: logger}
}

type brandRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required,slug"`
	Description string `json:"description"`
	Logo        string `json:"logo" binding:"omitempty,url"`
	Website     string `json:"website" binding:"omitempty,url"`
	IsActive    *bool  `json:"isActive"`
}

type brandUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,slug"`
	Description *string `json:"description"`
	Logo        *string `json:"logo" binding:"omitempty,url"`
	Website     *string `json:"website" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

func (h *BrandHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("brand list failed")
		response.Fail(c, http.StatusInternalServerError, "could not list brands", nil)
		return
	}
	response.List(c, items, len(items))
}

func (h *BrandHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrBrandNotFound) {
			response.Fail(c, http.StatusNotFound, "brand not found", nil)
			return
		}
		h.Logger.WithError(err).Error("brand get failed")
		response.Fail(c, http.StatusInternalServerError, "could not load brand", nil)
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) Create(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	b := &entity.Brand{
		Name:        req.Name,
		Slug:        validation.NormalizeSlug(req.Slug),
		Description: req.Description,
		Logo:        req.Logo,
		Website:     req.Website,
		IsActive:    true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := h.Svc.Create(c.Request.Context(), b); err != nil {
		if errors.Is(err, application.ErrSlugTaken) {
			response.Fail(c, http.StatusBadRequest, "slug already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("brand create failed")
		response.Fail(c, http.StatusInternalServerError, "could not create brand", nil)
		return
	}
	response.Created(c, b)
}

// Update applies a partial merge: only the fields present in the payload
// change.
func (h *BrandHandler) Update(c *gin.Context) {
	var req brandUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrBrandNotFound) {
			response.Fail(c, http.StatusNotFound, "brand not found", nil)
			return
		}
		h.Logger.WithError(err).Error("brand load failed")
		response.Fail(c, http.StatusInternalServerError, "could not update brand", nil)
		return
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Slug != nil {
		b.Slug = validation.NormalizeSlug(*req.Slug)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Logo != nil {
		b.Logo = *req.Logo
	}
	if req.Website != nil {
		b.Website = *req.Website
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := h.Svc.Update(c.Request.Context(), b); err != nil {
		if errors.Is(err, application.ErrSlugTaken) {
			response.Fail(c, http.StatusBadRequest, "slug already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("brand update failed")
		response.Fail(c, http.StatusInternalServerError, "could not update brand", nil)
		return
	}
	response.OK(c, b)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrBrandNotFound) {
			response.Fail(c, http.StatusNotFound, "brand not found", nil)
			return
		}
		h.Logger.WithError(err).Error("brand delete failed")
		response.Fail(c, http.StatusInternalServerError, "could not delete brand", nil)
		return
	}
	response.Message(c, "brand deleted")
}
