package response

import (
	"log"
	"net/http"

	"github.com/torcriss/CocoReddit-sub000/internal/identity"
	"github.com/torcriss/CocoReddit-sub000/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityKey is the gin context key the auth middleware stores the request
// identity under.
const IdentityKey = "identity"

// GetIdentity retrieves the authenticated identity from the context.
func GetIdentity(c *gin.Context) (identity.Identity, error) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return identity.Identity{}, apperror.ErrUnauthorized
	}

	ident, ok := v.(identity.Identity)
	if !ok || ident.UserID == uuid.Nil {
		return identity.Identity{}, apperror.ErrUnauthorized
	}

	return ident, nil
}

// OptionalIdentity returns the identity if one is present, nil for anonymous
// requests. Read paths use it so anonymous views get stable defaults instead
// of errors.
func OptionalIdentity(c *gin.Context) *identity.Identity {
	ident, err := GetIdentity(c)
	if err != nil {
		return nil
	}
	return &ident
}

// Error writes a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
