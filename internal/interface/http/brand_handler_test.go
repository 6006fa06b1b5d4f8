package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/validation"
)

type brandRepoStub struct {
	byID map[string]*entity.Brand
}

func (s *brandRepoStub) Create(_ context.Context, b *entity.Brand) error {
	s.byID[b.ID] = b
	return nil
}

func (s *brandRepoStub) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *brandRepoStub) List(_ context.Context) ([]entity.Brand, error) {
	out := []entity.Brand{}
	for _, b := range s.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (s *brandRepoStub) Update(_ context.Context, b *entity.Brand) error {
	if _, ok := s.byID[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	s.byID[b.ID] = &cp
	return nil
}

func (s *brandRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func newBrandRouter(t *testing.T, seed ...*entity.Brand) (*gin.Engine, *brandRepoStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	stub := &brandRepoStub{byID: map[string]*entity.Brand{}}
	for _, b := range seed {
		stub.byID[b.ID] = b
	}

	h := NewBrandHandler(application.NewBrandService(stub, logger), logger)
	r := gin.New()
	r.PUT("/brands/:id", h.Update)
	return r, stub
}

func TestBrandUpdateMergesPartialPayload(t *testing.T) {
	r, stub := newBrandRouter(t, &entity.Brand{
		ID:       "b1",
		Name:     "Acme",
		Slug:     "acme",
		Website:  "https://acme.example",
		IsActive: true,
	})

	w := putJSON(r, "/brands/b1", `{"isActive": false}`)
	require.Equal(t, http.StatusOK, w.Code)

	got := stub.byID["b1"]
	assert.False(t, got.IsActive)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "acme", got.Slug)
	assert.Equal(t, "https://acme.example", got.Website)
}

func TestBrandUpdateNotFound(t *testing.T) {
	r, _ := newBrandRouter(t)

	w := putJSON(r, "/brands/missing", `{"name": "Acme"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
