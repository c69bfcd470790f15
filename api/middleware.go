package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/backoffice/internal/service/operators"
	"github.com/gin-gonic/gin"
)

const operatorKey = "operator"

type TokenVerifier interface {
	Verify(token string) (*operators.Claims, error)
}

// OperatorAuth attaches the operator claims of a valid bearer token to the
// request. Requests without a token pass through as clients; a bad token is
// rejected.
func OperatorAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(operatorKey, claims)
		c.Next()
	}
}

func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isOperator(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator token required"})
			return
		}
		c.Next()
	}
}

func isOperator(c *gin.Context) bool {
	v, ok := c.Get(operatorKey)
	if !ok {
		return false
	}
	claims, ok := v.(*operators.Claims)
	return ok && claims.Role == operators.RoleOperator
}
