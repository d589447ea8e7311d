package handlers

import (
	"net/http"

	"printshop/cartstore"
	"printshop/models"

	"github.com/gin-gonic/gin"
)

func SizesList(c *gin.Context, s cartstore.SessionHandle) {
	sizes, err := models.GetSizes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, sizes)
}
