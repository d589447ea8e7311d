package handlers

import (
	"net/http"

	"printshop/cartstore"
	"printshop/personalize"

	"github.com/gin-gonic/gin"
)

// PhotoUploadResult reports per-file outcomes so the storefront can show one
// aggregated notification after the whole batch settles
type PhotoUploadResult struct {
	Name  string            `json:"name"`
	Error string            `json:"error,omitempty"`
	Unit  *personalize.Unit `json:"unit,omitempty"`
}

func PhotoUpload(c *gin.Context, s cartstore.SessionHandle) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, Response{"no files uploaded"})
		return
	}
	sess := engine.Session(s)
	results := make([]PhotoUploadResult, 0, len(files))
	uploaded := 0
	for _, header := range files {
		result := PhotoUploadResult{Name: header.Filename}
		file, err := header.Open()
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		unit, err := engine.AddPhoto(sess, header.Filename, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Unit = unit
			uploaded++
		}
		results = append(results, result)
	}
	status := http.StatusOK
	if uploaded == 0 {
		// Total failure must not let the flow advance
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"uploaded": uploaded, "results": results})
}

type photoDeleteRequest struct {
	Handle uint64 `json:"handle" binding:"required"`
}

func PhotoDelete(c *gin.Context, s cartstore.SessionHandle) {
	var r photoDeleteRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := engine.RemovePhoto(engine.Session(s), r.Handle); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
