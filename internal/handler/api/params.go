package api

import (
	"net/http"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/handler/httperr"
	"localscout-booking/internal/handler/middleware"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errs.New("missing authenticated user")

// bookingTarget reads the :id path param and the acting user, aborting on failure.
func bookingTarget(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, actorID, true
}

// bindOptionalJSON binds the body when there is one. An empty body leaves dst zero.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}

// partyFromQuery reads ?role=, falling back to the caller's own role.
func partyFromQuery(c *gin.Context) (queries.Party, error) {
	if s := c.Query("role"); s != "" {
		p := queries.Party(s)
		if !p.IsValid() {
			return "", errs.Mark(errs.Newf("role %q", s), errs.ErrValidation)
		}
		return p, nil
	}
	if role, ok := middleware.GetUserRole(c); ok && role == user.RoleProvider {
		return queries.PartyProvider, nil
	}
	return queries.PartyCustomer, nil
}
