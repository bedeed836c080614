// roles.go - Handles role endpoints

package handlers // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes

	"go-dms-backend/services" // Role operations

	"github.com/gin-gonic/gin" // Gin web framework
)

func (h *Handler) CreateRole(c *gin.Context) { // Admin: create a new role
	var input services.RoleInput // Declare input variable
	if !bindJSON(c, &input) {    // Parse JSON input
		return
	}
	role, err := h.roles.Create(c.Request.Context(), caller(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role) // Return the stored role
}

func (h *Handler) ListRoles(c *gin.Context) { // All roles, for any signed-in caller
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}
