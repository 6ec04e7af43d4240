package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "armaso_session"

	ContextUserID   = "user_id"
	ContextUsername = "username"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}

// AuthMiddleware rejects requests without a valid, unrevoked session cookie.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthenticated) {
				utils.ErrorLogger.WithError(err).Error("error checking session")
				utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
				c.Abort()
				return
			}
			utils.RespondError(c, http.StatusUnauthorized, services.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextUsername, session.Username)
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
