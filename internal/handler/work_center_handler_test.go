package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

type registryStub struct {
	invalidated []string
}

func (r *registryStub) Lookup(ctx context.Context, id string) (*models.WorkCenter, error) {
	if id != "wc-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "work center "+id+" not found")
	}
	return &models.WorkCenter{ID: "wc-1", Name: "Assembly", Active: true}, nil
}

func (r *registryStub) Invalidate(ctx context.Context, id string) {
	r.invalidated = append(r.invalidated, id)
}

func TestWorkCenterHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &registryStub{}
	h := NewWorkCenterHandler(stub)
	router := gin.New()
	router.GET("/work-centers/:id", h.Get)
	router.DELETE("/work-centers/:id/cache", h.InvalidateCache)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/work-centers/wc-1", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Assembly"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/work-centers/wc-9", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/work-centers/wc-1/cache", nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, []string{"wc-1"}, stub.invalidated)
}
