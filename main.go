package main

import (
	"log"
	"strings"
	"time"

	"printshop/cartstore"
	"printshop/config"
	"printshop/db"
	"printshop/handlers"
	"printshop/models"
	"printshop/personalize"
	"printshop/session"
	"printshop/storage"
	"printshop/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	localStore, err := cartstore.NewDiskStore(config.CART_DIR)
	if err != nil {
		log.Fatalf("Cannot create local cart store: %v", err)
	}
	carts := cartstore.NewRepository(cartstore.NewDBStore(), localStore, cartstore.NewMemoryStore())
	engine := personalize.NewService(storage.GetDefaultStorage(), carts, models.GetSizes)
	handlers.Init(engine, carts)

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", session.HeaderName},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/image/fetch"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that

	// Cart session router
	sessionRouter := &session.Router{Base: router}
	// Catalog
	sessionRouter.GET("/catalog/sizes", handlers.SizesList)
	// Personalisation flow
	sessionRouter.POST("/personalize/photos", handlers.PhotoUpload)
	sessionRouter.POST("/personalize/photos/delete", handlers.PhotoDelete)
	sessionRouter.POST("/personalize/begin", handlers.PersonalizeBegin)
	sessionRouter.POST("/personalize/configure", handlers.PersonalizeConfigure)
	sessionRouter.POST("/personalize/save", handlers.PersonalizeSave)
	sessionRouter.GET("/personalize/status", handlers.PersonalizeStatus)
	// Cart
	sessionRouter.GET("/cart/list", handlers.CartList)
	sessionRouter.POST("/cart/add", handlers.CartAdd)
	sessionRouter.POST("/cart/quantity", handlers.CartUpdateQuantity)
	sessionRouter.POST("/cart/remove", handlers.CartRemove)
	sessionRouter.POST("/cart/clear", handlers.CartClear)
	sessionRouter.GET("/cart/total", handlers.CartTotal)
	// Locally hosted images
	router.GET("/image/fetch", handlers.ImageFetch)

	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
