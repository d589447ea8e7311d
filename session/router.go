package session

import (
	"log"

	"printshop/cartstore"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const handleKey = "cart_session"

// HeaderName lets the storefront pass its own locally-persisted handle,
// bypassing the cookie session entirely
const HeaderName = "X-Cart-Session"

// HandlerFunc receives the resolved cart session for the request
type HandlerFunc func(c *gin.Context, s cartstore.SessionHandle)

// Router is a wrapper that resolves the cart session handle before each
// handler runs, so no handler ever reaches for ambient session state
type Router struct {
	Base *gin.Engine
}

// Resolve prefers the handle the storefront minted itself, then the cookie
// session, then mints a fresh one
func Resolve(c *gin.Context) cartstore.SessionHandle {
	if h := cartstore.SessionHandle(c.GetHeader(HeaderName)); h.Valid() {
		return h
	}
	sess := sessions.Default(c)
	if v := sess.Get(handleKey); v != nil {
		if str, ok := v.(string); ok && cartstore.SessionHandle(str).Valid() {
			return cartstore.SessionHandle(str)
		}
	}
	handle := cartstore.NewSessionHandle()
	sess.Set(handleKey, string(handle))
	if err := sess.Save(); err != nil {
		log.Printf("Cannot save session cookie: %v", err)
	}
	return handle
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	handler(c, Resolve(c))
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
