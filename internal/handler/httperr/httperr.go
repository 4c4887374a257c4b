package httperr

import (
	"net/http"

	"localscout-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target error
	status int
	msg    string
}

var taxonomy = []mapping{
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrInvalidStateTransition, http.StatusConflict, "Booking is not in a state that allows this action"},
	{errs.ErrPaymentInitiationFailed, http.StatusBadGateway, "Payment could not be initiated"},
	{errs.ErrTransientGateway, http.StatusServiceUnavailable, "Payment gateway unavailable"},
}

// Status maps a usecase error onto an HTTP status and public message.
// Anything outside the taxonomy is a 500.
func Status(err error) (int, string) {
	for _, m := range taxonomy {
		if errs.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// AbortWithUsecaseError aborts with the status mapped from err.
func AbortWithUsecaseError(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}
