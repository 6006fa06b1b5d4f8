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

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Slug        string  `json:"slug" binding:"required,slug"`
	Description string  `json:"description"`
	Image       string  `json:"image" binding:"omitempty,url"`
	ParentID    *string `json:"parentId" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"isActive"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,slug"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,url"`
	ParentID    *string `json:"parentId" binding:"omitempty,uuid"`
	IsActive    *bool   `json:"isActive"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("category list failed")
		response.Fail(c, http.StatusInternalServerError, "could not list categories", nil)
		return
	}
	response.List(c, items, len(items))
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.Svc.Get(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("category get failed")
		response.Fail(c, http.StatusInternalServerError, "could not load category", nil)
		return
	}
	response.OK(c, cat)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if !validation.IsSlug(slug) {
		response.Fail(c, http.StatusBadRequest, "invalid slug", nil)
		return
	}
	cat, err := h.Svc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("category get failed")
		response.Fail(c, http.StatusInternalServerError, "could not load category", nil)
		return
	}
	response.OK(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cat := &entity.Category{
		Name:        req.Name,
		Slug:        validation.NormalizeSlug(req.Slug),
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := h.Svc.Create(c.Request.Context(), cat); err != nil {
		if errors.Is(err, application.ErrSlugTaken) {
			response.Fail(c, http.StatusBadRequest, "slug already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("category create failed")
		response.Fail(c, http.StatusInternalServerError, "could not create category", nil)
		return
	}
	response.Created(c, cat)
}

// Update applies a partial merge: only the fields present in the payload
// change.
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cat, err := h.Svc.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("category load failed")
		response.Fail(c, http.StatusInternalServerError, "could not update category", nil)
		return
	}

	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Slug != nil {
		cat.Slug = validation.NormalizeSlug(*req.Slug)
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.Image != nil {
		cat.Image = *req.Image
	}
	if req.ParentID != nil {
		cat.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	if err := h.Svc.Update(c.Request.Context(), cat); err != nil {
		if errors.Is(err, application.ErrSlugTaken) {
			response.Fail(c, http.StatusBadRequest, "slug already in use", nil)
			return
		}
		h.Logger.WithError(err).Error("category update failed")
		response.Fail(c, http.StatusInternalServerError, "could not update category", nil)
		return
	}
	response.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Fail(c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("category delete failed")
		response.Fail(c, http.StatusInternalServerError, "could not delete category", nil)
		return
	}
	response.Message(c, "category deleted")
}
