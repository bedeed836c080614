// user.go - Handles signup, login, logout and user profile endpoints

package handlers // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes

	"go-dms-backend/pagination" // Default page sizes
	"go-dms-backend/services"   // User operations

	"github.com/gin-gonic/gin" // Gin web framework
)

func (h *Handler) Register(c *gin.Context) { // Handler for user signup
	var input services.SignupInput // Declare input variable
	if !bindJSON(c, &input) {      // Parse JSON input
		return
	}
	user, err := h.users.Create(c.Request.Context(), input) // Validate, hash password, save
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "signup successful", "user": user}) // Success response
}

func (h *Handler) Login(c *gin.Context) { // Handler for user login
	var input services.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	token, err := h.users.Login(c.Request.Context(), input) // Check credentials and sign token
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token}) // Return token
}

func (h *Handler) Logout(c *gin.Context) { // Handler for user logout (token revocation)
	if err := h.users.Logout(c.Request.Context(), caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out!"})
}

func (h *Handler) ListUsers(c *gin.Context) { // Admin: paginated list of users
	page, err := h.users.List(c.Request.Context(), caller(c), pageParams(c, pagination.DefaultUserLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagination": page.Pagination, "users": page.Items})
}

func (h *Handler) SearchUsers(c *gin.Context) { // Admin: search users by name or email
	page, err := h.users.Search(c.Request.Context(), caller(c), c.Query("q"), pageParams(c, pagination.DefaultUserLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagination": page.Pagination, "users": page.Items})
}

func (h *Handler) GetUser(c *gin.Context) { // Profile view (full for self/admin)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) { // Profile update (allow-listed fields)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.UserUpdate
	fields, ok := bindUpdate(c, &input)
	if !ok {
		return
	}
	input.Fields = fields
	user, err := h.users.Update(c.Request.Context(), caller(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Update Successful!", "user": user})
}

func (h *Handler) DeleteUser(c *gin.Context) { // Admin: delete a user and their documents
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

func (h *Handler) UserDocuments(c *gin.Context) { // Documents owned by a user (self/admin)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	page, err := h.docs.ListByOwner(c.Request.Context(), caller(c), id, pageParams(c, pagination.DefaultDocumentLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagination": page.Pagination, "documents": page.Items})
}
