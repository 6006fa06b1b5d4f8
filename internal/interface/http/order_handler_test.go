package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/pkg/validation"
)

func newOrderRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h := NewOrderHandler(application.NewOrderService(nil, nil, nil, nil, logger), logger)
	r := gin.New()
	r.POST("/orders", h.Create)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestOrderCreateRequiresFullShippingAddress(t *testing.T) {
	r := newOrderRouter(t)

	body := `{
		"items": [{"productId": "7f9c24e8-3b0c-4f9e-9a2d-111111111111", "quantity": 1}],
		"shippingAddress": {
			"fullName": "Jane Buyer",
			"address": "1 Main St",
			"city": "Springfield",
			"zipCode": "12345",
			"country": "US"
		},
		"paymentMethod": "card"
	}`

	w := postJSON(r, "/orders", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"state"`)
	assert.Contains(t, w.Body.String(), `"phone"`)
}

func TestOrderCreateRejectsEmptyItems(t *testing.T) {
	r := newOrderRouter(t)

	body := `{
		"items": [],
		"shippingAddress": {
			"fullName": "Jane Buyer",
			"address": "1 Main St",
			"city": "Springfield",
			"state": "IL",
			"zipCode": "12345",
			"country": "US",
			"phone": "+1555000111"
		},
		"paymentMethod": "card"
	}`

	w := postJSON(r, "/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
