package api

import (
	"net/http"
	"strconv"

	reqdto "localscout-booking/internal/handler/dto/request"
	resdto "localscout-booking/internal/handler/dto/response"
	"localscout-booking/internal/handler/httperr"
	"localscout-booking/internal/handler/middleware"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds    commands.BookingCommands
	payment commands.PaymentCommands
	q       queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, payment commands.PaymentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, payment: payment, q: q}
}

// @Summary Create booking
// @Description Request a booking for a provider service. booking_date is local time in the service time zone unless it carries an offset.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.CreatedBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateBooking(c.Request.Context(), req.ToInput(customerID))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+id.String())
	c.JSON(http.StatusCreated, resdto.CreatedBookingResponse{ID: id})
}

// @Summary Get booking
// @Description Get a booking the caller takes part in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary List bookings
// @Description List the caller's bookings as customer or provider, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param role query string false "customer or provider (defaults to the caller's role)"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	party, err := partyFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid role", nil)
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
	}

	var page *queries.BookingPage
	if party == queries.PartyProvider {
		page, err = h.q.ListProviderBookings(c.Request.Context(), userID, c.Query("after"), limit)
	} else {
		page, err = h.q.ListCustomerBookings(c.Request.Context(), userID, c.Query("after"), limit)
	}
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Booking statistics
// @Description Dashboard counters for the caller as customer or provider
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param role query string false "customer or provider (defaults to the caller's role)"
// @Success 200 {object} resdto.BookingStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings/stats [get]
func (h *BookingHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	party, err := partyFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid role", nil)
		return
	}
	stats, err := h.q.Stats(c.Request.Context(), userID, party)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingStats(stats)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Approve booking
// @Description Provider approves a pending booking, optionally with a final price
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ApproveBookingRequest false "Optional final price"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c *gin.Context) {
	id, actorID, ok := bookingTarget(c)
	if !ok {
		return
	}
	var req reqdto.ApproveBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	var err error
	if req.HasFinalPrice() {
		err = h.cmds.ApproveWithPrice(c.Request.Context(), id, actorID, *req.FinalPrice)
	} else {
		err = h.cmds.ApproveBooking(c.Request.Context(), id, actorID)
	}
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Reject booking
// @Description Provider rejects a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Rejection reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	id, actorID, ok := bookingTarget(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if err := h.cmds.RejectBooking(c.Request.Context(), id, actorID, req.Reason); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Cancel booking
// @Description Customer cancels a booking that is not yet paid
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReasonRequest false "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, actorID, ok := bookingTarget(c)
	if !ok {
		return
	}
	var req reqdto.ReasonRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if err := h.cmds.CancelBooking(c.Request.Context(), id, actorID, req.Reason); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	h.respondWithView(c, id, http.StatusOK)
}

// @Summary Start checkout
// @Description Create a payment gateway session for an approved booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/checkout [post]
func (h *BookingHandler) Checkout(c *gin.Context) {
	id, actorID, ok := bookingTarget(c)
	if !ok {
		return
	}
	redirectURL, err := h.payment.CreateCheckoutSession(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CheckoutResponse{RedirectURL: redirectURL})
}

func (h *BookingHandler) respondWithView(c *gin.Context, id uuid.UUID, status int) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
