package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is written to the iss claim of every token.
const TokenIssuer = "movieboard"

// Claims represents JWT claims
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func abortWithError(c *gin.Context, status int, code, message string, details gin.H) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success":   false,
		"error":     body,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ParseToken validates tokenString and returns its claims.
func ParseToken(tokenString, secretKey string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JWTAuth creates a JWT authentication middleware
func JWTAuth(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization token is required", nil)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abortWithError(c, http.StatusUnauthorized, "INVALID_TOKEN_FORMAT", "Authorization token must be in format: Bearer <token>", nil)
			return
		}

		tokenString := tokenParts[1]
		claims, err := ParseToken(tokenString, secretKey)
		if err != nil {
			var errorCode, errorMessage string

			switch {
			case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
				errorCode = "INVALID_SIGNATURE"
				errorMessage = "Invalid token signature"
			case errors.Is(err, jwt.ErrTokenExpired):
				errorCode = "TOKEN_EXPIRED"
				errorMessage = "Token has expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				errorCode = "TOKEN_NOT_VALID_YET"
				errorMessage = "Token is not valid yet"
			case errors.Is(err, jwt.ErrTokenInvalidClaims), errors.Is(err, jwt.ErrTokenInvalidIssuer):
				errorCode = "INVALID_CLAIMS"
				errorMessage = "Invalid token claims"
			default:
				errorCode = "INVALID_TOKEN"
				errorMessage = "Invalid token"
			}

			abortWithError(c, http.StatusUnauthorized, errorCode, errorMessage, nil)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			abortWithError(c, http.StatusForbidden, "NO_ROLE", "User role not found", nil)
			return
		}

		userRole, _ := role.(string)
		for _, required := range roles {
			if userRole == required {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, "INSUFFICIENT_PRIVILEGES", "Insufficient privileges for this operation", gin.H{
			"required_roles": roles,
			"user_role":      userRole,
		})
	}
}

// GenerateToken signs a token for a user that expires after ttl
func GenerateToken(userID int, username, role, secretKey string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// RefreshToken issues a new token for the holder of a still valid one
func RefreshToken(tokenString, secretKey string, ttl time.Duration) (string, time.Time, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return GenerateToken(claims.UserID, claims.Username, claims.Role, secretKey, ttl)
}
