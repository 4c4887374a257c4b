package cookie

import (
	"github.com/gin-gonic/gin"
)

// The identity service sets this cookie on the shared parent domain.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
