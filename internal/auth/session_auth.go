// Package auth resolves the caller's session from the Authorization header.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"go.uber.org/zap"
)

const (
	sessionKey = "session"
	accountKey = "account"
)

// BearerToken extracts the session id from "Authorization: Bearer <id>".
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Session attaches the caller's session to the context. Requests without a
// token get an empty anonymous session, so guards see "not authenticated".
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, store.Session(BearerToken(c.GetHeader("Authorization"))))
		c.Next()
	}
}

// Require rejects requests whose session has no token (401) or acts as an
// account type not listed (403). No types admits any account. Session must run first.
func Require(logger *zap.Logger, userTypes ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil || sess.ID() == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "ログインしてください"})
			return
		}

		flags, err := sess.Flags(c.Request.Context())
		if err != nil {
			logger.Error("failed to read session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if !flags.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "ログインしてください"})
			return
		}

		account, err := sess.Account(c.Request.Context())
		if err != nil {
			logger.Error("failed to read session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if !allowed(account.UserType, userTypes) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "この操作は許可されていません"})
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

func allowed(t models.UserType, types []models.UserType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func FromContext(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// AccountFromContext returns the account Require admitted.
func AccountFromContext(c *gin.Context) session.Account {
	v, _ := c.Get(accountKey)
	account, _ := v.(session.Account)
	return account
}
