package middleware

import (
	"net/http"

	userRepo "questbook/database/repository/user"
	"questbook/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AdminOnlyMiddleware loads the authenticated user's role and rejects
// non-admins. It must run after JWTAuthUserMiddleware.
func AdminOnlyMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("userID")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		usr, err := users.GetByIDWithProjection(userID.(string), bson.M{"id": 1, "role": 1})
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if usr.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set("userRole", usr.Role)
		c.Next()
	}
}
