package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	payroll.Service
	generateFn func(ctx context.Context, organizationID, adminID string, req payroll.GenerateRequest) (payroll.GenerateResult, error)
	payslip    []byte
}

func (f *fakeService) Generate(ctx context.Context, organizationID, adminID string, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	return f.generateFn(ctx, organizationID, adminID, req)
}

func (f *fakeService) DownloadPayslip(ctx context.Context, organizationID, id string) ([]byte, string, error) {
	if f.payslip == nil {
		return nil, "", payrollerrors.ErrRecordNotFound
	}
	return f.payslip, "payslip_EMP-001_2026-06.pdf", nil
}

func (f *fakeService) ListAdjustments(ctx context.Context, organizationID, adminID string, month, year int) ([]payroll.AdjustmentResponse, error) {
	return []payroll.AdjustmentResponse{{ID: "adj-1", Month: month, Year: year}}, nil
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestPayrollHandler_Generate(t *testing.T) {
	organizationID := uuid.NewString()
	adminID := uuid.NewString()

	t.Run("admin caller generates for own sheet", func(t *testing.T) {
		svc := &fakeService{
			generateFn: func(ctx context.Context, oid, aid string, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
				assert.Equal(t, organizationID, oid)
				assert.Equal(t, adminID, aid)
				assert.Len(t, req.Entries, 1)
				return payroll.GenerateResult{Month: req.Month, Year: req.Year, SuccessCount: 1, Errors: []payroll.RowError{}}, nil
			},
		}
		h := payroll.NewHandler(svc)

		c, w := newContext(http.MethodPost, "/payroll/generate", `{"month":6,"year":2026,"entries":[{"employee":"EMP-001","payable_days":"30"}]}`)
		c.Set("organization_id", organizationID)
		c.Set("admin_id", adminID)

		h.Generate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data payroll.GenerateResult `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Data.SuccessCount)
	})

	t.Run("invalid month", func(t *testing.T) {
		h := payroll.NewHandler(&fakeService{})

		c, w := newContext(http.MethodPost, "/payroll/generate", `{"month":0,"year":2026}`)
		h.Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("run in progress", func(t *testing.T) {
		svc := &fakeService{
			generateFn: func(ctx context.Context, oid, aid string, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
				return payroll.GenerateResult{}, payrollerrors.ErrGenerationInProgress
			},
		}
		h := payroll.NewHandler(svc)

		c, w := newContext(http.MethodPost, "/payroll/generate", `{"month":6,"year":2026}`)
		h.Generate(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), payrollerrors.ErrGenerationInProgress.Message)
	})

	t.Run("caches the result under the idempotency key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := &fakeService{
			generateFn: func(ctx context.Context, oid, aid string, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
				return payroll.GenerateResult{Month: 6, Year: 2026, Errors: []payroll.RowError{}}, nil
			},
		}
		h := payroll.NewHandlerWithRedis(svc, rdb)

		mock.CustomMatch(func(expected, actual []interface{}) error {
			payload, _ := actual[2].([]byte)
			if actual[1] != "idemp:key" || !strings.Contains(string(payload), `"success_count":0`) {
				return errors.New("unexpected cache write")
			}
			return nil
		}).ExpectSet("idemp:key", "payload", 24*time.Hour).SetVal("OK")
		mock.ExpectDel("idemp:key:lock").SetVal(1)

		c, w := newContext(http.MethodPost, "/payroll/generate", `{"month":6,"year":2026}`)
		c.Set("idempotency_cache_key", "idemp:key")
		c.Set("idempotency_lock_key", "idemp:key:lock")
		h.Generate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	h := payroll.NewHandler(&fakeService{payslip: []byte("%PDF-1.3")})

	c, w := newContext(http.MethodGet, "/payroll/records/r1/payslip", "")
	c.Params = gin.Params{{Key: "id", Value: "r1"}}
	h.DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip_EMP-001_2026-06.pdf")

	h = payroll.NewHandler(&fakeService{})
	c, w = newContext(http.MethodGet, "/payroll/records/r1/payslip", "")
	h.DownloadPayslip(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayrollHandler_ListAdjustments(t *testing.T) {
	h := payroll.NewHandler(&fakeService{})

	c, w := newContext(http.MethodGet, "/payroll/adjustments?month=6&year=2026", "")
	h.ListAdjustments(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adj-1"`)

	c, w = newContext(http.MethodGet, "/payroll/adjustments?month=6", "")
	h.ListAdjustments(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
