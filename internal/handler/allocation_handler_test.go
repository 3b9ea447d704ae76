package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/internal/dto"
	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

type allocationServiceStub struct {
	created   dto.CreateAllocationRequest
	createErr error
	query     dto.AllocationQuery
	loc       *time.Location
	rows      []models.Allocation
}

func (s *allocationServiceStub) Create(ctx context.Context, req dto.CreateAllocationRequest) (*models.Allocation, error) {
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Allocation{ID: "slot-1", WorkCenterID: req.WorkCenterID, ShiftID: models.ShiftID(req.ShiftType), StartAt: req.Start, EndAt: req.End}, nil
}

func (s *allocationServiceStub) List(ctx context.Context, query dto.AllocationQuery, loc *time.Location) ([]models.Allocation, error) {
	s.query = query
	s.loc = loc
	return s.rows, nil
}

func newAllocationRouter(stub *allocationServiceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAllocationHandler(stub, time.UTC)
	router := gin.New()
	router.GET("/allocations", h.List)
	router.POST("/allocations", h.Create)
	return router
}

func TestAllocationHandlerCreate(t *testing.T) {
	stub := &allocationServiceStub{}
	router := newAllocationRouter(stub)

	recorder := postJSON(router, "/allocations", `{"workcenter_id":"wc-1","shift_type":"1","start_datetime":"2024-03-04T08:00:00Z","end_datetime":"2024-03-04T09:30:00Z"}`, nil)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), stub.created.End.UTC())
	assert.Contains(t, recorder.Body.String(), `"id":"slot-1"`)
}

func TestAllocationHandlerCreateDoubleBooking(t *testing.T) {
	stub := &allocationServiceStub{createErr: appErrors.Clone(appErrors.ErrDoubleBooking, "already booked")}
	router := newAllocationRouter(stub)

	recorder := postJSON(router, "/allocations", `{"workcenter_id":"wc-1","shift_type":"1","start_datetime":"2024-03-04T08:00:00Z","end_datetime":"2024-03-04T09:30:00Z"}`, nil)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "DOUBLE_BOOKING")
}

func TestAllocationHandlerList(t *testing.T) {
	stub := &allocationServiceStub{rows: []models.Allocation{{ID: "slot-1"}, {ID: "slot-2"}}}
	router := newAllocationRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/allocations?workcenter_id=wc-1&shift_type=2&from=2024-03-01&to=2024-03-07", nil)
	req.Header.Set(TimezoneHeader, "Asia/Tehran")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "wc-1", stub.query.WorkCenterID)
	assert.Equal(t, "2", stub.query.ShiftType)
	assert.Equal(t, "Asia/Tehran", stub.loc.String())
	assert.Contains(t, recorder.Body.String(), `"count":2`)
}
