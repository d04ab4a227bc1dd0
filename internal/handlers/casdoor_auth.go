package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/skolaplan/admin-service/internal/config"
	"github.com/skolaplan/admin-service/internal/models"
)

// CasdoorAuthMiddleware provides authentication using Casdoor SDK.
type CasdoorAuthMiddleware struct {
	client *casdoorsdk.Client
	config config.CasdoorConfig
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware.
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client: client,
		config: cfg,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := cam.client.ParseJwtToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		if claims.Id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid user ID in token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Id)
		c.Set("user_email", claims.User.Email)
		c.Set("user_role", mapCasdoorRole(claims.User.Type))

		c.Next()
	}
}

// RequireRoleMiddleware checks if the authenticated staff member has one of
// the required roles. Admins pass every check.
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "user role not found in context",
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.StaffRole)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "invalid user role format",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// mapCasdoorRole maps the Casdoor user type to a back-office role. Unknown
// types get read-only access.
func mapCasdoorRole(casdoorType string) models.StaffRole {
	switch strings.ToLower(casdoorType) {
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStaff
	}
}

// GetUserIDFromContext extracts the staff member's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}
