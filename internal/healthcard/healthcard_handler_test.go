package healthcard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RonikAgarwal/Swasthi/internal/healthcard"
	healthcarderrors "github.com/RonikAgarwal/Swasthi/internal/healthcard/errors"
	"github.com/RonikAgarwal/Swasthi/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	beginCaptureFn  func(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error)
	cancelCaptureFn func(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error)
	waitCaptureFn   func(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error)
	workflowFn      func(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error)
	submitFn        func(ctx context.Context, employeeID string, req healthcard.SubmitRequest) (healthcard.CardResponse, error)
	updateFn        func(ctx context.Context, employeeID string, req healthcard.UpdateRequest) (healthcard.CardResponse, error)
	getByEmployeeFn func(ctx context.Context, employeeID string) (healthcard.CardResponse, error)
	getByCardFn     func(ctx context.Context, cardID string) (healthcard.CardResponse, error)
	getAllFn        func(ctx context.Context) ([]healthcard.CardResponse, error)
}

func (f *fakeService) BeginCapture(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error) {
	return f.beginCaptureFn(ctx, employeeID)
}
func (f *fakeService) CancelCapture(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error) {
	return f.cancelCaptureFn(ctx, employeeID)
}
func (f *fakeService) WaitCapture(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error) {
	return f.waitCaptureFn(ctx, employeeID)
}
func (f *fakeService) Workflow(ctx context.Context, employeeID string) (healthcard.WorkflowResponse, error) {
	return f.workflowFn(ctx, employeeID)
}
func (f *fakeService) Submit(ctx context.Context, employeeID string, req healthcard.SubmitRequest) (healthcard.CardResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeService) Update(ctx context.Context, employeeID string, req healthcard.UpdateRequest) (healthcard.CardResponse, error) {
	return f.updateFn(ctx, employeeID, req)
}
func (f *fakeService) GetByEmployeeID(ctx context.Context, employeeID string) (healthcard.CardResponse, error) {
	return f.getByEmployeeFn(ctx, employeeID)
}
func (f *fakeService) GetByCardID(ctx context.Context, cardID string) (healthcard.CardResponse, error) {
	return f.getByCardFn(ctx, cardID)
}
func (f *fakeService) GetAll(ctx context.Context) ([]healthcard.CardResponse, error) {
	return f.getAllFn(ctx)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader = strings.NewReader(body)
	c.Request = httptest.NewRequest(method, target, reader)
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, eid string, req healthcard.SubmitRequest) (healthcard.CardResponse, error) {
			assert.Equal(t, "EMP010", eid)
			assert.Equal(t, "Test User", req.Name)
			return healthcard.CardResponse{
				EmployeeID:   eid,
				HealthCardID: "SW100001",
				Registered:   true,
				Name:         req.Name,
			}, nil
		},
	}
	h := healthcard.NewHandler(svc)

	c, w := newTestContext(http.MethodPost, "/health-cards/EMP010/submit",
		`{"name":"Test User","place":"Pune","checkup_date":"2024-01-01"}`)
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "SW100001")
}

func TestHandler_Submit_MissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := healthcard.NewHandler(&fakeService{})

	c, w := newTestContext(http.MethodPost, "/health-cards/EMP010/submit", `{"place":"Pune"}`)
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeValidationError)
}

func TestHandler_Submit_BiometricsRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		submitFn: func(ctx context.Context, eid string, req healthcard.SubmitRequest) (healthcard.CardResponse, error) {
			return healthcard.CardResponse{}, healthcarderrors.ErrBiometricsRequired
		},
	}
	h := healthcard.NewHandler(svc)

	c, w := newTestContext(http.MethodPost, "/health-cards/EMP010/submit", `{"name":"Test User"}`)
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.Submit(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestHandler_Submit_IdempotentRetryReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, rmock := redismock.NewClientMock()
	calls := 0
	svc := &fakeService{
		submitFn: func(ctx context.Context, eid string, req healthcard.SubmitRequest) (healthcard.CardResponse, error) {
			calls++
			return healthcard.CardResponse{
				EmployeeID:   eid,
				HealthCardID: "SW100001",
				Registered:   true,
				Name:         req.Name,
			}, nil
		},
	}
	h := healthcard.NewHandlerWithRedis(svc, rdb)

	router := gin.New()
	healthcard.RegisterRoutes(router.Group(""), h, rdb)

	cacheKey := "idemp:/health-cards/:employeeId/submit::key-1"
	lockKey := cacheKey + ":lock"
	payload, _ := json.Marshal(healthcard.CardResponse{
		EmployeeID:   "EMP010",
		HealthCardID: "SW100001",
		Registered:   true,
		Name:         "Test User",
	})

	// First submit takes the lock, caches the response, then releases.
	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	rmock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
	rmock.ExpectDel(lockKey).SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health-cards/EMP010/submit",
		strings.NewReader(`{"name":"Test User"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The retry is answered from the cache without reaching the service.
	rmock.ExpectGet(cacheKey).SetVal(string(payload))

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/health-cards/EMP010/submit",
		strings.NewReader(`{"name":"Test User"}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("Idempotency-Key", "key-1")
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "SW100001")

	assert.Equal(t, 1, calls)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_Submit_ErrorReleasesLockWithoutCaching(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, rmock := redismock.NewClientMock()
	svc := &fakeService{
		submitFn: func(ctx context.Context, eid string, req healthcard.SubmitRequest) (healthcard.CardResponse, error) {
			return healthcard.CardResponse{}, healthcarderrors.ErrBiometricsRequired
		},
	}
	h := healthcard.NewHandlerWithRedis(svc, rdb)

	router := gin.New()
	healthcard.RegisterRoutes(router.Group(""), h, rdb)

	cacheKey := "idemp:/health-cards/:employeeId/submit::key-2"
	lockKey := cacheKey + ":lock"

	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
	rmock.ExpectDel(lockKey).SetVal(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health-cards/EMP010/submit",
		strings.NewReader(`{"name":"Test User"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "key-2")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestHandler_CaptureStatus_LongPoll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	waited := false
	svc := &fakeService{
		waitCaptureFn: func(ctx context.Context, eid string) (healthcard.WorkflowResponse, error) {
			waited = true
			return healthcard.WorkflowResponse{EmployeeID: eid, State: string(healthcard.StateBiometricCaptured)}, nil
		},
		workflowFn: func(ctx context.Context, eid string) (healthcard.WorkflowResponse, error) {
			return healthcard.WorkflowResponse{EmployeeID: eid, State: string(healthcard.StateUnregistered)}, nil
		},
	}
	h := healthcard.NewHandler(svc)

	c, w := newTestContext(http.MethodGet, "/health-cards/EMP010/biometrics?wait=true", "")
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.CaptureStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, waited)
	assert.Contains(t, w.Body.String(), string(healthcard.StateBiometricCaptured))

	c2, w2 := newTestContext(http.MethodGet, "/health-cards/EMP010/biometrics", "")
	c2.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.CaptureStatus(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), string(healthcard.StateUnregistered))
}

func TestHandler_BeginCapture_Accepted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		beginCaptureFn: func(ctx context.Context, eid string) (healthcard.WorkflowResponse, error) {
			return healthcard.WorkflowResponse{EmployeeID: eid, State: string(healthcard.StateBiometricPending)}, nil
		},
	}
	h := healthcard.NewHandler(svc)

	c, w := newTestContext(http.MethodPost, "/health-cards/EMP010/biometrics", "")
	c.Params = gin.Params{{Key: "employeeId", Value: "EMP010"}}
	h.BeginCapture(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestHandler_PublicViewer_UnknownCardStill200(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByCardFn: func(ctx context.Context, cardID string) (healthcard.CardResponse, error) {
			return healthcard.CardResponse{
				HealthCardID: cardID,
				Registered:   false,
				Name:         "Ravi Kumar",
			}, nil
		},
	}
	h := healthcard.NewHandler(svc)

	c, w := newTestContext(http.MethodGet, "/public/cards/SW999999", "")
	c.Params = gin.Params{{Key: "cardId", Value: "SW999999"}}
	h.GetByCardID(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"registered\":false")
}
