package handlers

import (
	"net/http"

	"printshop/cartstore"
	"printshop/personalize"

	"github.com/gin-gonic/gin"
)

func PersonalizeBegin(c *gin.Context, s cartstore.SessionHandle) {
	if err := engine.Begin(engine.Session(s)); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

type configureRequest struct {
	Handle uint64                          `json:"handle" binding:"required"`
	Config personalize.CanvasConfiguration `json:"config"`
}

func PersonalizeConfigure(c *gin.Context, s cartstore.SessionHandle) {
	var r configureRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := engine.Configure(engine.Session(s), r.Handle, r.Config); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PersonalizeSave finalises the photo being configured and either advances to
// the next one or, on the last photo, submits the whole batch to the cart.
// The storefront resets its scroll position on every successful advance.
func PersonalizeSave(c *gin.Context, s cartstore.SessionHandle) {
	var view personalize.Viewport
	if err := c.ShouldBindJSON(&view); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	done, err := engine.SaveAndContinue(engine.Session(s), view)
	if err != nil {
		c.JSON(http.StatusBadGateway, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": done})
}

func PersonalizeStatus(c *gin.Context, s cartstore.SessionHandle) {
	c.JSON(http.StatusOK, engine.Status(engine.Session(s)))
}
