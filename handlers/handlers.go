package handlers

import (
	"printshop/cartstore"
	"printshop/personalize"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

var (
	engine *personalize.Service
	carts  *cartstore.Repository
)

func Init(e *personalize.Service, r *cartstore.Repository) {
	engine = e
	carts = r
}
