package api

import (
	"strings"

	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const correlationIDHeader = "Correlation-ID"

// CorrelationID tags the request context logger with the caller's correlation
// id, or a fresh one, and echoes it back.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(correlationIDHeader, id)

		entry := logrus.WithFields(logrus.Fields{
			"correlation_id": id,
			"method":         c.Request.Method,
			"path":           c.FullPath(),
		})
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), entry))
		c.Next()
	}
}

// Session attaches the caller's session, built from a bearer token or the
// session cookie. Requests without a valid token get an anonymous session.
func Session(auth *session.Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		ctx := c.Request.Context()
		c.Request = c.Request.WithContext(session.WithContext(ctx, auth.Authenticate(ctx, token)))
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
