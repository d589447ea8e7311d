package handlers

import (
	"net/http"
	"strings"

	"printshop/storage"

	"github.com/gin-gonic/gin"
)

// ImageFetch serves objects stored in disk buckets. S3 buckets hand out their
// own URLs, so only locally hosted images come through here.
func ImageFetch(c *gin.Context) {
	path := c.Query("path")
	if path == "" || strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		c.JSON(http.StatusBadRequest, Response{"invalid path"})
		return
	}
	c.Header("cache-control", "public, max-age=604800")
	storage.GetDefaultStorage().Serve(path, c.Request, c.Writer)
}
