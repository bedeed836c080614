// auth.go - Bearer token authentication middleware
// This file implements authentication and authorization for the API
//
// Authentication Flow:
// 1. Extract the bearer token from the Authorization header
// 2. Verify signature, expiry and revocation through the auth gate
// 3. Store the caller identity (user id + role) in the context for handlers
//
// Authorization Flow (Admin):
// 1. Run authentication middleware first
// 2. Check the role carried by the verified token
// 3. Allow/deny access based on role

package middleware // Declares the package name

import ( // Import required packages
	"go-dms-backend/apperr" // Error kinds (for status codes)
	"go-dms-backend/auth"   // Token verification
	"go-dms-backend/models" // Caller identity

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)
)

const identityKey = "identity" // Context key holding the verified models.Identity

// AuthMiddleware - Returns a Gin middleware function for bearer authentication
// Requests without a valid token are rejected with 401
func AuthMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, gate) {
			c.Next() // Continue to next handler (authentication successful)
		}
	}
}

// AdminMiddleware - Returns a Gin middleware function for admin access control
// It authenticates first when AuthMiddleware has not already run, then
// requires the admin role (403 otherwise)
func AdminMiddleware(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerFrom(c); !ok && !authenticate(c, gate) {
			return // Exit early - authentication failed
		}

		id, _ := CallerFrom(c)
		if err := gate.RequireAdmin(id); err != nil {
			abort(c, err)
			return
		}
		c.Next() // Continue to next handler (admin access granted)
	}
}

// authenticate verifies the request's bearer token and stores the identity.
// It aborts the request and returns false on failure.
func authenticate(c *gin.Context, gate *auth.Gate) bool {
	// STEP 1: Extract Authorization header
	token, ok := auth.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		abort(c, apperr.Unauthenticated("No token provided."))
		return false
	}

	// STEP 2: Verify the token and turn it into an identity
	id, err := gate.Verify(c.Request.Context(), token)
	if err != nil {
		abort(c, err)
		return false
	}

	// STEP 3: Store identity in context for later use
	c.Set(identityKey, id)
	return true
}

// CallerFrom returns the identity stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.KindOf(err).Status(), gin.H{"message": apperr.Message(err)})
}
