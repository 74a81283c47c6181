package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propertycalc/server/internal/database"
	"propertycalc/server/internal/metrics"
)

const (
	sessionUserKey = "username"
	contextUserKey = "username"
	requestIDKey   = "request_id"

	requestIDHeader = "X-Request-ID"
)

// RequestLogger logs every request and records it in the HTTP metrics.
func RequestLogger(logger *logrus.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		latency := time.Since(start)
		status := c.Writer.Status()
		m.ObserveHTTP(route, c.Request.Method, status, latency)

		entry := logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"route":      route,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Debug("Request handled")
		}
	}
}

// RequireUser aborts requests without a logged-in session whose user still
// exists. Page requests are redirected to the login form, API requests get
// a 401. A session for a deleted account is cleared.
func RequireUser(users UserStore, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := sessionUser(c)
		if username == "" {
			rejectAnonymous(c)
			return
		}

		user, err := users.GetUserByUsername(username)
		if errors.Is(err, database.ErrUserNotFound) {
			clearSession(c)
			rejectAnonymous(c)
			return
		}
		if err != nil {
			logger.WithError(err).WithField("username", username).Error("Failed to look up session user")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(contextUserKey, user.Username)
		c.Next()
	}
}

func rejectAnonymous(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

func sessionUser(c *gin.Context) string {
	username, _ := sessions.Default(c).Get(sessionUserKey).(string)
	return username
}

func currentUser(c *gin.Context) string {
	return c.GetString(contextUserKey)
}

func clearSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
}
