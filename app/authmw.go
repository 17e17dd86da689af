package app

import (
	"asset_booking/booking"
	"asset_booking/models"
	"asset_booking/session"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

const identityKey = "identity"

// sessionToken pulls the token the auth service issued, either as a bearer
// header or the session cookie.
func sessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Request.Cookie(AppSessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

// UserFinder resolves session claims to the current user row. *db.Repo
// satisfies it.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthRequired resolves the request's session to verified claims and puts a
// booking.Identity into the context. The role is re-read from the user row
// so a role change takes effect without waiting for session expiry.
func AuthRequired(appSess *session.AppSessionStore, repo UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}

		SetIdentity(c, booking.Identity{UserID: u.ID, Role: u.Role})
		c.Next()
	}
}

func SetIdentity(c *gin.Context, id booking.Identity) { c.Set(identityKey, id) }

func IdentityFrom(c *gin.Context) (booking.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return booking.Identity{}, false
	}
	id, ok := v.(booking.Identity)
	return id, ok && id.UserID != ""
}
