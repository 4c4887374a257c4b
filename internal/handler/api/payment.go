package api

import (
	"log/slog"
	"net/http"
	"strings"

	reqdto "localscout-booking/internal/handler/dto/request"
	resdto "localscout-booking/internal/handler/dto/response"
	"localscout-booking/internal/handler/httperr"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const outcomeRejectedPayload = "rejected_payload"

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Payment webhook
// @Description Server-to-server payment notification. Answers 200 for handled, duplicate and malformed notifications, 503 when the gateway could not be reached so the notification is retried.
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction id issued at checkout"
// @Param val_id formData string true "Gateway validation id"
// @Param status formData string false "Gateway status"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /payment/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, ok := webhookPayload(c)
	if !ok {
		c.JSON(http.StatusOK, resdto.WebhookResponse{Outcome: outcomeRejectedPayload})
		return
	}

	outcome, err := h.cmds.HandlePaymentWebhook(c.Request.Context(), payload)
	if err != nil {
		if errs.Is(err, errs.ErrValidation) {
			slog.WarnContext(c.Request.Context(), "payment webhook rejected",
				"tran_id", payload.TranID, "error", err)
			c.JSON(http.StatusOK, resdto.WebhookResponse{Outcome: outcomeRejectedPayload})
			return
		}
		slog.ErrorContext(c.Request.Context(), "payment webhook failed",
			"tran_id", payload.TranID, "error", err)
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	slog.InfoContext(c.Request.Context(), "payment webhook handled",
		"tran_id", payload.TranID, "outcome", outcome)
	c.JSON(http.StatusOK, resdto.WebhookResponse{Outcome: string(outcome)})
}

// webhookPayload accepts the form-encoded IPN as well as Mercado Pago's JSON
// notification, where the transaction id travels in the query string.
func webhookPayload(c *gin.Context) (commands.WebhookPayload, bool) {
	if c.ContentType() == binding.MIMEJSON {
		var n reqdto.MercadoPagoNotification
		if err := c.ShouldBindJSON(&n); err != nil {
			slog.WarnContext(c.Request.Context(), "unreadable payment notification", "error", err)
			return commands.WebhookPayload{}, false
		}
		if n.Type != "" && n.Type != "payment" {
			slog.DebugContext(c.Request.Context(), "skipping non-payment notification", "type", n.Type)
			return commands.WebhookPayload{}, false
		}
		return commands.WebhookPayload{TranID: c.Query("tran_id"), ValID: n.Data.ID}, true
	}

	var form reqdto.PaymentWebhookForm
	if err := c.ShouldBind(&form); err != nil {
		slog.WarnContext(c.Request.Context(), "unreadable payment notification", "error", err)
		return commands.WebhookPayload{}, false
	}
	return form.ToPayload(), true
}

// @Summary Payment success page
// @Description Browser return after a successful payment. Informational only; the booking is confirmed by the webhook.
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.PaymentReturnResponse
// @Router /payment/success [get]
func (h *PaymentHandler) Success(c *gin.Context) {
	paymentReturn(c, "success", "Payment received. Your booking will be confirmed shortly.")
}

// @Summary Payment failure page
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.PaymentReturnResponse
// @Router /payment/fail [get]
func (h *PaymentHandler) Fail(c *gin.Context) {
	paymentReturn(c, "fail", "Payment failed. You can retry from your bookings.")
}

// @Summary Payment cancel page
// @Tags payments
// @Produce json
// @Success 200 {object} resdto.PaymentReturnResponse
// @Router /payment/cancel [get]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	paymentReturn(c, "cancel", "Payment was canceled.")
}

func paymentReturn(c *gin.Context, result, msg string) {
	var form reqdto.PaymentWebhookForm
	_ = c.ShouldBind(&form)
	c.JSON(http.StatusOK, resdto.PaymentReturnResponse{
		Result:  result,
		TranID:  strings.TrimSpace(form.TranID),
		Message: msg,
	})
}
