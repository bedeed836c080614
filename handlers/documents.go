// documents.go - Handles document endpoints

package handlers // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes

	"go-dms-backend/pagination" // Default page sizes
	"go-dms-backend/services"   // Document operations

	"github.com/gin-gonic/gin" // Gin web framework
)

func (h *Handler) CreateDocument(c *gin.Context) { // Handler for document creation
	var input services.DocumentInput // Declare input variable
	if !bindJSON(c, &input) {        // Parse JSON input
		return
	}
	doc, err := h.docs.Create(c.Request.Context(), caller(c), input) // Validate and save, owned by the caller
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Document created.", "document": doc}) // Success response
}

func (h *Handler) ListDocuments(c *gin.Context) { // Paginated list of documents visible to the caller
	page, err := h.docs.List(c.Request.Context(), caller(c), pageParams(c, pagination.DefaultDocumentLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagination": page.Pagination, "documents": page.Items})
}

func (h *Handler) SearchDocuments(c *gin.Context) { // Search visible documents by title
	page, err := h.docs.Search(c.Request.Context(), caller(c), c.Query("q"), pageParams(c, pagination.DefaultDocumentLimit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pagination": page.Pagination, "documents": page.Items})
}

func (h *Handler) GetDocument(c *gin.Context) { // Single document (404 before 403)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.docs.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) UpdateDocument(c *gin.Context) { // Owner-only partial update
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input services.DocumentUpdate
	fields, ok := bindUpdate(c, &input)
	if !ok {
		return
	}
	input.Fields = fields
	doc, err := h.docs.Update(c.Request.Context(), caller(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Update Successful!", "document": doc})
}

func (h *Handler) DeleteDocument(c *gin.Context) { // Owner-only delete
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.docs.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully."})
}
