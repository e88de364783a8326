package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionIDKey = "session_id"

// SessionConfig configures the session cookie.
type SessionConfig struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
}

// Session makes sure every request carries a session id. The id lives in an
// HS256-signed cookie; a missing, expired or tampered cookie is replaced by a
// fresh id.
func Session(cfg SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := readSessionCookie(c, cfg)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				logger.Debug("Discarding session cookie", zap.Error(err))
			}

			id = uuid.NewString()
			token, err := signSession(id, cfg)
			if err != nil {
				logger.Error("Failed to sign session cookie", zap.Error(err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, token, int(cfg.TTL.Seconds()), "/", "", false, true)
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the id set by the Session middleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

func signSession(id string, cfg SessionConfig) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:       id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if cfg.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.TTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}

func readSessionCookie(c *gin.Context, cfg SessionConfig) (string, error) {
	raw, err := c.Cookie(cfg.CookieName)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.ID, nil
}
