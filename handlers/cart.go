package handlers

import (
	"net/http"

	"printshop/cartstore"
	"printshop/models"

	"github.com/gin-gonic/gin"
)

// CartLineView is one cart line with its price resolved against the current
// size table. Unit prices for non-personalised lines are recomputed on every
// read; personalised lines keep their frozen price.
type CartLineView struct {
	models.CartItem
	UnitPrice float64 `json:"unitPrice"`
}

type CartView struct {
	Items []CartLineView `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}

func cartView(cart *models.Cart, sizes models.SizeTable) CartView {
	view := CartView{
		Items: make([]CartLineView, 0, len(cart.Items)),
		Total: cart.Total(sizes),
		Count: cart.ItemCount(),
	}
	for i := range cart.Items {
		view.Items = append(view.Items, CartLineView{
			CartItem:  cart.Items[i],
			UnitPrice: cart.Items[i].UnitPrice(sizes),
		})
	}
	return view
}

func CartList(c *gin.Context, s cartstore.SessionHandle) {
	sizes, err := models.GetSizes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, cartView(carts.Load(s), sizes))
}

type cartAddRequest struct {
	Product           models.Product `json:"product" binding:"required"`
	Quantity          int            `json:"quantity"`
	SelectedDimension string         `json:"selectedDimension"`
	PrintType         string         `json:"printType"`
	FrameType         string         `json:"frameType"`
}

func CartAdd(c *gin.Context, s cartstore.SessionHandle) {
	var r cartAddRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.Quantity <= 0 {
		r.Quantity = 1
	}
	cart := carts.Load(s)
	cart.AddItem(models.CartItem{
		Product:           r.Product,
		Quantity:          r.Quantity,
		SelectedDimension: r.SelectedDimension,
		PrintType:         r.PrintType,
		FrameType:         r.FrameType,
	})
	if err := carts.Save(s, cart); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	sizes, err := models.GetSizes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, cartView(cart, sizes))
}

type cartQuantityRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

func CartUpdateQuantity(c *gin.Context, s cartstore.SessionHandle) {
	var r cartQuantityRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	cart := carts.Load(s)
	cart.UpdateQuantity(r.ID, r.Quantity)
	if err := carts.Save(s, cart); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

type cartRemoveRequest struct {
	ID string `json:"id" binding:"required"`
}

func CartRemove(c *gin.Context, s cartstore.SessionHandle) {
	var r cartRemoveRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	cart := carts.Load(s)
	cart.RemoveItem(r.ID)
	if err := carts.Save(s, cart); err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func CartClear(c *gin.Context, s cartstore.SessionHandle) {
	carts.Clear(s)
	c.JSON(http.StatusOK, OKResponse)
}

// CartTotal is the read surface checkout consumes
func CartTotal(c *gin.Context, s cartstore.SessionHandle) {
	sizes, err := models.GetSizes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	cart := carts.Load(s)
	c.JSON(http.StatusOK, gin.H{"total": cart.Total(sizes), "count": cart.ItemCount()})
}
