package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onthi-app/onthi-backend/internal/model"
)

// parsePaging reads ?page and ?limit with the defaults list endpoints use.
// Range clamping happens in the service layer.
func parsePaging(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// parseCond decodes the ?cond JSON filter into dst. An absent cond leaves
// dst zero-valued; a malformed or unknown-field cond returns the error.
func parseCond(c *gin.Context, dst interface{}) error {
	return model.ParseCond(c.Query("cond"), dst)
}
