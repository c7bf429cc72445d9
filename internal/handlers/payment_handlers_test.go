package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"club_manager_backend/internal/models"
	"club_manager_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentService returns canned results so handler mapping can be tested
// without a database.
type stubPaymentService struct {
	payment *models.Payment
	err     error
}

func (s *stubPaymentService) CreatePayment(actor models.AuthContext, req services.CreatePaymentRequest) (*models.Payment, error) {
	return s.payment, s.err
}
func (s *stubPaymentService) GetPaymentByID(actor models.AuthContext, paymentID int64) (*models.Payment, error) {
	return s.payment, s.err
}
func (s *stubPaymentService) GetPayments(actor models.AuthContext, page, pageSize int, memberKind *string, memberID *int64, status *string) ([]models.Payment, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []models.Payment{*s.payment}, 1, nil
}
func (s *stubPaymentService) RecordPartialPayment(actor models.AuthContext, paymentID int64, amount float64) (*models.Payment, error) {
	return s.payment, s.err
}
func (s *stubPaymentService) MarkFullyPaid(actor models.AuthContext, paymentID int64) (*models.Payment, error) {
	return s.payment, s.err
}
func (s *stubPaymentService) DeletePayment(actor models.AuthContext, paymentID int64) error {
	return s.err
}

func authStub() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", int64(1))
		c.Set("teamID", int64(1))
		c.Set("username", "admin")
		c.Set("userRole", models.RoleAdmin)
	}
}

func paymentTestRouter(svc services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewPaymentHandler(svc)

	group := engine.Group("/payments")
	group.Use(authStub())
	group.POST("", h.CreatePayment)
	group.GET("/:id", h.GetPaymentByID)
	group.POST("/:id/transactions", h.RecordPartialPayment)
	group.POST("/:id/settle", h.MarkFullyPaid)
	return engine
}

func samplePayment() *models.Payment {
	return &models.Payment{
		ID:          5,
		TeamID:      1,
		MemberID:    7,
		MemberKind:  models.MemberKindPlayer,
		MemberName:  "Karim Benali",
		PaymentType: models.PaymentTypeMembership,
		TotalAmount: 300,
		Advance:     150,
		Remaining:   150,
		DueDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.PaymentStatusPending,
	}
}

func TestCreatePaymentReturns201(t *testing.T) {
	engine := paymentTestRouter(&stubPaymentService{payment: samplePayment()})

	body := `{"member_id":7,"member_kind":"player","payment_type":"membership","total_amount":300,"initial_advance":150,"due_date":"2026-09-01"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"member_name":"Karim Benali"`)
}

func TestCreatePaymentRejectsMalformedBody(t *testing.T) {
	engine := paymentTestRouter(&stubPaymentService{payment: samplePayment()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"member_id":"oops"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordPartialPaymentStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"payment missing", services.ErrPaymentNotFound, http.StatusNotFound},
		{"amount exceeds remaining", services.ErrAmountExceedsRemaining, http.StatusBadRequest},
		{"non positive amount", services.ErrNonPositiveAmount, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubPaymentService{err: tc.serviceErr}
			if tc.serviceErr == nil {
				stub.payment = samplePayment()
			}
			engine := paymentTestRouter(stub)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/payments/5/transactions", strings.NewReader(`{"amount":50}`))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestGetPaymentByIDRejectsBadID(t *testing.T) {
	engine := paymentTestRouter(&stubPaymentService{payment: samplePayment()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/not-a-number", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkFullyPaidWithoutAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewPaymentHandler(&stubPaymentService{payment: samplePayment()})
	// No auth middleware: the handler must refuse instead of serving data.
	engine.POST("/payments/:id/settle", h.MarkFullyPaid)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/5/settle", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
