//go:build unit

package api_test

import (
	"bytes"
	"net/http"
	nethttptest "net/http/httptest"
	"net/url"
	"testing"

	"localscout-booking/internal/handler/api"
	resdto "localscout-booking/internal/handler/dto/response"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/tests/common/httptest"
	commandsmock "localscout-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCmds *commandsmock.MockPaymentCommands
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	h := api.NewPaymentHandler(s.mockCmds)

	s.router.POST("/payment/webhook", h.Webhook)
	s.router.Any("/payment/success", h.Success)
	s.router.Any("/payment/fail", h.Fail)
	s.router.Any("/payment/cancel", h.Cancel)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestWebhook() {
	form := url.Values{
		"tran_id": {"LS_0123456789abcdef0123456789abcdef_a1b2c3d4"},
		"val_id":  {"VAL-1"},
		"status":  {"VALID"},
	}
	want := commands.WebhookPayload{TranID: form.Get("tran_id"), ValID: "VAL-1", Status: "VALID"}

	s.Run("outcomes are acknowledged with 200", func() {
		for _, outcome := range []commands.WebhookOutcome{
			commands.OutcomeConfirmed, commands.OutcomeAlreadyConfirmed,
			commands.OutcomeNotConfirmed, commands.OutcomeIgnored,
		} {
			s.Run(string(outcome), func() {
				s.mockCmds.EXPECT().HandlePaymentWebhook(gomock.Any(), want).Return(outcome, nil)

				rec := httptest.PerformFormRequest(s.T(), s.router, "/payment/webhook", form)

				var body resdto.WebhookResponse
				httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
				s.Equal(string(outcome), body.Outcome)
			})
		}
	})

	s.Run("malformed payload is acknowledged", func() {
		s.mockCmds.EXPECT().HandlePaymentWebhook(gomock.Any(), commands.WebhookPayload{}).
			Return(commands.WebhookOutcome(""), errs.Mark(errs.New("missing ids"), errs.ErrValidation))

		rec := httptest.PerformFormRequest(s.T(), s.router, "/payment/webhook", url.Values{})

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected_payload", body.Outcome)
	})

	s.Run("transient gateway failure asks for a retry", func() {
		s.mockCmds.EXPECT().HandlePaymentWebhook(gomock.Any(), want).
			Return(commands.WebhookOutcome(""), errs.Mark(errs.New("timeout"), errs.ErrTransientGateway))

		rec := httptest.PerformFormRequest(s.T(), s.router, "/payment/webhook", form)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")
	})

	s.Run("store failure is a 500", func() {
		s.mockCmds.EXPECT().HandlePaymentWebhook(gomock.Any(), want).
			Return(commands.WebhookOutcome(""), errs.Mark(errs.New("db"), errs.ErrDatabaseOperationFailed))

		rec := httptest.PerformFormRequest(s.T(), s.router, "/payment/webhook", form)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})

	s.Run("json notification takes tran_id from the query", func() {
		s.mockCmds.EXPECT().HandlePaymentWebhook(gomock.Any(),
			commands.WebhookPayload{TranID: "LS_abc_1", ValID: "987"}).
			Return(commands.OutcomeConfirmed, nil)

		req := nethttptest.NewRequest(http.MethodPost, "/payment/webhook?tran_id=LS_abc_1",
			bytes.NewBufferString(`{"type":"payment","action":"payment.created","data":{"id":"987"}}`))
		req.Header.Set("Content-Type", "application/json")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("non payment json notification is skipped", func() {
		req := nethttptest.NewRequest(http.MethodPost, "/payment/webhook",
			bytes.NewBufferString(`{"type":"merchant_order","data":{"id":"1"}}`))
		req.Header.Set("Content-Type", "application/json")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("rejected_payload", body.Outcome)
	})
}

func (s *PaymentHandlerTestSuite) TestReturnPages() {
	cases := []struct {
		path   string
		result string
	}{
		{"/payment/success", "success"},
		{"/payment/fail", "fail"},
		{"/payment/cancel", "cancel"},
	}
	for _, tc := range cases {
		s.Run(tc.result, func() {
			rec := httptest.PerformFormRequest(s.T(), s.router, tc.path, url.Values{"tran_id": {"LS_x_1"}})

			var body resdto.PaymentReturnResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(tc.result, body.Result)
			s.Equal("LS_x_1", body.TranID)
			s.NotEmpty(body.Message)
		})
	}
}
