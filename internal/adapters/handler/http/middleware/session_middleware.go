package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

const (
	CookieName          = "niyam_session"
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	timezoneHeader      = "X-Timezone"
	timezoneQuery       = "tz"
	ContextStoreKey     = "sessionStore"
	ContextSessionIDKey = "sessionID"

	// AuthPath is where signed-out visitors are sent.
	AuthPath = "/auth"
)

type SessionConfig struct {
	Tokens   *services.TokenService
	Provider session.Provider
	Secure   bool
	Logger   *logrus.Entry
}

// Session resolves the browser session from the cookie or the bearer header,
// issuing a new one when neither is valid, and hydrates its store.
func Session(cfg SessionConfig) gin.HandlerFunc {
	logger := cfg.Logger.WithField("component", "session_middleware")

	return func(c *gin.Context) {
		var sessionID string
		if raw := tokenFromRequest(c); raw != "" {
			id, err := cfg.Tokens.ValidateToken(raw)
			if err != nil {
				logger.WithError(err).Debug("ignoring invalid session token")
			} else {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = cfg.Tokens.NewSessionID()
			signed, err := cfg.Tokens.GenerateToken(sessionID)
			if err != nil {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, signed, int(cfg.Tokens.Duration().Seconds()), "/", "", cfg.Secure, true)
		}

		store := session.NewStore(cfg.Provider.ForSession(sessionID), logger.WithField("session", shortID(sessionID)))
		if _, err := store.Hydrate(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session storage unavailable"})
			return
		}

		if tz := viewerTimezone(c); tz != "" {
			if err := store.SetTimezone(c.Request.Context(), tz); err != nil {
				if errors.Is(err, session.ErrInvalidTimezone) {
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": session.ErrInvalidTimezone.Error()})
					return
				}
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session storage unavailable"})
				return
			}
		}

		c.Set(ContextSessionIDKey, sessionID)
		c.Set(ContextStoreKey, store)
		c.Next()
	}
}

// RequireAuth guards screens that show user data. Browsers asking for HTML
// are redirected to the auth screen, API clients get a 401 naming it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := GetStore(c)
		if ok && store.Current().Authenticated() {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, AuthPath)
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "authentication required",
			"redirect": AuthPath,
		})
	}
}

func GetStore(c *gin.Context) (*session.Store, bool) {
	v, exists := c.Get(ContextStoreKey)
	if !exists {
		return nil, false
	}
	store, ok := v.(*session.Store)
	return store, ok
}

func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextSessionIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok
}

// viewerTimezone reads the browser's zone from ?tz= or the X-Timezone header.
func viewerTimezone(c *gin.Context) string {
	if tz := strings.TrimSpace(c.Query(timezoneQuery)); tz != "" {
		return tz
	}
	return strings.TrimSpace(c.GetHeader(timezoneHeader))
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	fields := strings.Fields(c.GetHeader(authorizationHeader))
	if len(fields) == 2 && fields[0] == authorizationType {
		return fields[1]
	}
	return ""
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
