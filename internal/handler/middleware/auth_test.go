//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/handler/middleware"
	"localscout-booking/internal/pkg/cookie"
	"localscout-booking/internal/pkg/jwt"
	"localscout-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issuer = "localscout-identity"

func newAuthRouter(svc *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(usecase.NewAuthenticator(svc))

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.POST("/approve", m.RequireAuth(), m.RequireRole(user.RoleProvider), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour, jwt.WithIssuer(issuer))
	router := newAuthRouter(svc)
	customerID := uuid.New()
	token, err := svc.GenerateToken(customerID, user.RoleCustomer)
	require.NoError(t, err)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{
			name:   "bearer header",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			status: http.StatusOK,
		},
		{
			name:   "lowercase scheme",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) },
			status: http.StatusOK,
		},
		{
			name: "cookie fallback",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookieName, Value: token})
			},
			status: http.StatusOK,
		},
		{
			name:   "missing token",
			setup:  func(*http.Request) {},
			status: http.StatusUnauthorized,
		},
		{
			name:   "malformed token",
			setup:  func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") },
			status: http.StatusUnauthorized,
		},
		{
			name: "foreign issuer",
			setup: func(r *http.Request) {
				other, _ := jwt.NewService("secret", time.Hour, jwt.WithIssuer("elsewhere")).
					GenerateToken(customerID, user.RoleCustomer)
				r.Header.Set("Authorization", "Bearer "+other)
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "unknown role",
			setup: func(r *http.Request) {
				odd, _ := svc.GenerateToken(customerID, user.Role("courier"))
				r.Header.Set("Authorization", "Bearer "+odd)
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			if tc.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), customerID.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour, jwt.WithIssuer(issuer))
	router := newAuthRouter(svc)

	for role, want := range map[user.Role]int{
		user.RoleProvider: http.StatusNoContent,
		user.RoleCustomer: http.StatusForbidden,
		user.RoleAdmin:    http.StatusForbidden,
	} {
		t.Run(role.String(), func(t *testing.T) {
			token, err := svc.GenerateToken(uuid.New(), role)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/approve", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, want, w.Code)
		})
	}
}
