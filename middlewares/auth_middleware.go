package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulizieapp/cleaning-planner/auth"
	"github.com/pulizieapp/cleaning-planner/utils"
)

// SessionCookie is the cookie carrying the opaque session id.
const SessionCookie = "session_id"

// SessionAuth resolves the session cookie against the store and puts the
// owning account id into the request context.
func SessionAuth(sessions auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}

		accountID, err := sessions.Get(c.Request.Context(), sid)
		if err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("session expired"))
			} else {
				utils.RespondError(c, http.StatusInternalServerError, err)
			}
			c.Abort()
			return
		}

		c.Set("account_id", accountID)
		c.Set(SessionCookie, sid)
		c.Next()
	}
}

// AccountID reads the authenticated account id set by SessionAuth.
func AccountID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("account_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
