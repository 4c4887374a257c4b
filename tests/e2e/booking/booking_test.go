//go:build e2e

package booking_test

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"localscout-booking/internal/domain/user"
	resdto "localscout-booking/internal/handler/dto/response"
	"localscout-booking/tests/common/authtest"
	"localscout-booking/tests/common/builder"
	"localscout-booking/tests/common/dbtest"
	"localscout-booking/tests/common/httptest"
	"localscout-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper

	customerID    uuid.UUID
	providerID    uuid.UUID
	serviceID     uuid.UUID
	customerToken string
	providerToken string
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)

	customer := builder.NewCustomerBuilder().BuildProfile()
	provider := builder.NewProviderBuilder().BuildProfile()
	s.customerID = dbtest.CreateTestUser(s.T(), s.DB, customer)
	s.providerID = dbtest.CreateTestUser(s.T(), s.DB, provider)
	s.serviceID = dbtest.CreateTestService(s.T(), s.DB, dbtest.ServiceFixture{
		ProviderID: s.providerID,
		Name:       "Home Deep Cleaning",
		PriceMinor: 50000,
	})
	s.customerToken = s.jwt.GenerateToken(s.T(), s.customerID, user.RoleCustomer)
	s.providerToken = s.jwt.GenerateToken(s.T(), s.providerID, user.RoleProvider)
}

func (s *BookingE2ETestSuite) createBooking() uuid.UUID {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", map[string]any{
		"service_id":   s.serviceID,
		"booking_date": "2025-03-10T14:00",
		"notes":        "Third floor, ring twice",
	}, s.customerToken)

	var created resdto.CreatedBookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created.ID
}

func (s *BookingE2ETestSuite) approve(id uuid.UUID, body any) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/approve", body, s.providerToken)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
}

func (s *BookingE2ETestSuite) checkout(id uuid.UUID) string {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/checkout", nil, s.customerToken)
	var res resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)

	tranID := res.RedirectURL[strings.LastIndex(res.RedirectURL, "/")+1:]
	require.True(s.T(), strings.HasPrefix(tranID, "LS_"), tranID)
	return tranID
}

func (s *BookingE2ETestSuite) webhook(tranID, wantOutcome string) {
	w := httptest.PerformFormRequest(s.T(), s.Router, "/payment/webhook", url.Values{
		"tran_id": {tranID},
		"val_id":  {"VAL-" + tranID},
		"status":  {"VALID"},
	})
	httptest.AssertOutcome(s.T(), w, wantOutcome)
}

func (s *BookingE2ETestSuite) TestFullLifecycle() {
	t := s.T()
	id := s.createBooking()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings/"+id.String(), nil, s.providerToken)
	var view resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
	s.Equal("PendingApproval", view.Status)
	s.Equal("2025-03-10T08:00:00Z", view.BookingDate.UTC().Format("2006-01-02T15:04:05Z07:00"))
	s.Equal("500.00", view.PayableAmount)
	s.Equal(1, dbtest.CountNotifications(t, s.DB, s.providerID))

	s.approve(id, map[string]any{"final_price": "450"})
	s.Equal(1, dbtest.CountNotifications(t, s.DB, s.customerID))

	tranID := s.checkout(id)
	s.Equal("450.00", s.Gateway.Amount(tranID))

	s.webhook(tranID, "confirmed")
	status, ref := dbtest.BookingStatus(t, s.DB, id)
	s.Equal("Confirmed", status)
	s.Equal("BANK-VAL-"+tranID, ref)
	s.Equal(2, dbtest.CountNotifications(t, s.DB, s.customerID))
	s.Equal(2, dbtest.CountNotifications(t, s.DB, s.providerID))

	// Duplicate IPN: no gateway call, no extra notifications.
	validations := s.Gateway.Validations()
	s.webhook(tranID, "already_confirmed")
	s.Equal(validations, s.Gateway.Validations())
	s.Equal(2, dbtest.CountNotifications(t, s.DB, s.customerID))

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings/stats?role=customer", nil, s.customerToken)
	var stats resdto.BookingStatsResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &stats)
	s.Equal(1, stats.Requested)
	s.Equal(1, stats.Confirmed)
}

func (s *BookingE2ETestSuite) TestConcurrentWebhooksConfirmOnce() {
	t := s.T()
	id := s.createBooking()
	s.approve(id, nil)
	tranID := s.checkout(id)

	const n = 5
	outcomes := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.PerformFormRequest(t, s.Router, "/payment/webhook", url.Values{
				"tran_id": {tranID},
				"val_id":  {"VAL-" + tranID},
			})
			outcomes[i] = w.Body.String()
		}()
	}
	wg.Wait()

	confirmed := 0
	for _, o := range outcomes {
		if strings.Contains(o, `"confirmed"`) {
			confirmed++
		}
	}
	s.Equal(1, confirmed, outcomes)
	status, _ := dbtest.BookingStatus(t, s.DB, id)
	s.Equal("Confirmed", status)
	// One approval notice plus one confirmation.
	s.Equal(2, dbtest.CountNotifications(t, s.DB, s.customerID))
}

func (s *BookingE2ETestSuite) TestFailedValidationLeavesBookingApproved() {
	t := s.T()
	id := s.createBooking()
	s.approve(id, nil)
	tranID := s.checkout(id)

	s.Gateway.SetValidationStatus("FAILED")
	s.webhook(tranID, "not_confirmed")

	status, _ := dbtest.BookingStatus(t, s.DB, id)
	s.Equal("Approved", status)
}

func (s *BookingE2ETestSuite) TestGuards() {
	id := s.createBooking()

	s.Run("customer cannot approve", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/approve", nil, s.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("another provider cannot approve", func() {
		other := dbtest.CreateTestUser(s.T(), s.DB, builder.NewProviderBuilder().WithID(uuid.New()).
			With(func(u *builder.UserBuilder) { u.Email = "other@example.com" }).BuildProfile())
		token := s.jwt.GenerateToken(s.T(), other, user.RoleProvider)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/approve", nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Forbidden")
	})

	s.Run("checkout before approval conflicts", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/checkout", nil, s.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("rejected booking cannot be canceled", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/reject",
			map[string]any{"reason": "fully booked"}, s.providerToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings/"+id.String()+"/cancel", nil, s.customerToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("expired token is rejected", func() {
		token := s.jwt.CreateExpiredToken(s.T(), s.customerID, user.RoleCustomer)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})
}

func (s *BookingE2ETestSuite) TestNotificationsReadFlow() {
	t := s.T()
	s.createBooking()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/notifications", nil, s.providerToken)
	var list []resdto.NotificationResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
	require.Len(t, list, 1)
	s.Contains(list[0].Message, "Home Deep Cleaning")

	path := "/api/notifications/" + list[0].ID.String() + "/read"
	w = httptest.PerformRequest(t, s.Router, http.MethodPost, path, nil, s.customerToken)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")

	for range 2 {
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, path, nil, s.providerToken)
		s.Equal(http.StatusNoContent, w.Code)
	}

	w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/notifications", nil, s.providerToken)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
	s.Empty(list)
}
