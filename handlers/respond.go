// respond.go - Shared request parsing and response helpers for the handlers

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-dms-backend/apperr"
	"go-dms-backend/middleware"
	"go-dms-backend/models"
	"go-dms-backend/pagination"
)

// respondError writes err as {"message": ...} with the status of its kind.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.KindOf(err).Status(), gin.H{"message": apperr.Message(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "Invalid request body.")
		return false
	}
	return true
}

// bindUpdate decodes a partial-update body into dst and returns the
// top-level keys the caller sent.
func bindUpdate(c *gin.Context, dst any) ([]string, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "Invalid request body.")
		return nil, false
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || keys == nil {
		badRequest(c, "Invalid request body.")
		return nil, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		badRequest(c, "Invalid request body.")
		return nil, false
	}
	fields := make([]string, 0, len(keys))
	for k := range keys {
		fields = append(fields, k)
	}
	return fields, true
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid id. Please check the id and try again.")
		return 0, false
	}
	return uint(id), true
}

// pageParams reads limit and offset from the query string; missing or
// malformed values fall back to the endpoint defaults.
func pageParams(c *gin.Context, defaultLimit int) pagination.Params {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return pagination.NewParams(limit, offset, defaultLimit)
}

// caller returns the authenticated identity; routes using it sit behind AuthMiddleware.
func caller(c *gin.Context) models.Identity {
	id, _ := middleware.CallerFrom(c)
	return id
}
