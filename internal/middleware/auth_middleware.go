package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken = apperror.New("INVALID_TOKEN", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

// Identity is the authenticated principal issued by the external auth
// service. AdminID and EmployeeID are optional depending on the role.
type Identity struct {
	UserID         string
	Role           string
	OrganizationID string
	AdminID        string
	EmployeeID     string
}

// AuthMiddleware verifies the bearer token (or access_token cookie) with
// JWT_SECRET and stores the identity claims on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return AuthMiddlewareWithSecret(os.Getenv("JWT_SECRET"))
}

func AuthMiddlewareWithSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		identity, err := ParseToken(tokenString, secret)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("role", identity.Role)
		c.Set("organization_id", identity.OrganizationID)
		if identity.AdminID != "" {
			c.Set("admin_id", identity.AdminID)
		}
		if identity.EmployeeID != "" {
			c.Set("employee_id", identity.EmployeeID)
		}

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, identity.UserID)
		ctx = contextutil.WithOrganizationID(ctx, identity.OrganizationID)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, nil).With(
			zap.String("user_id", identity.UserID),
			zap.String("organization_id", identity.OrganizationID),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ParseToken validates an HMAC-signed token and extracts the identity.
// user_id, role and organization_id are mandatory.
func ParseToken(tokenString, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{
		UserID:         stringClaim(claims, "user_id"),
		Role:           stringClaim(claims, "role"),
		OrganizationID: stringClaim(claims, "organization_id"),
		AdminID:        stringClaim(claims, "admin_id"),
		EmployeeID:     stringClaim(claims, "employee_id"),
	}
	required := []struct{ claim, value string }{
		{"user_id", identity.UserID},
		{"role", identity.Role},
		{"organization_id", identity.OrganizationID},
	}
	for _, r := range required {
		if r.value == "" {
			return Identity{}, ErrInvalidToken.WithDetails(map[string]string{"claim": r.claim})
		}
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return strings.TrimSpace(v)
}

func abortWith(c *gin.Context, err error) {
	response.FromError(c, err)
	c.Abort()
}
