package httpapi

import (
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"userService/internal/docs"
	"userService/internal/logging"
	"userService/repository"
)

// Version is reported in the API document.
const Version = "1.0.0"

var registerTagNames sync.Once

// NewRouter builds the gin engine serving the user routes, the API document
// and the catch-all JSON error responses.
func NewRouter(store repository.UserStore, logger zerolog.Logger) *gin.Engine {
	useJSONFieldNames()

	h := NewUserHandler(store, logger)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	// "/users/" gets the JSON 404, not a redirect with an HTML body.
	r.RedirectTrailingSlash = false
	r.Use(logging.Middleware(logger))
	r.Use(gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}))

	routes := h.Routes()
	for _, rt := range routes {
		r.Handle(rt.Method, ginPath(rt.Path), rt.Handler)
	}
	docs.Register(r, docs.Build(docs.Info{
		Title:       "Users API",
		Description: "Create, read, update and delete user records.",
		Version:     Version,
	}, definitions(), opsOf(routes)))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	return r
}

// useJSONFieldNames makes validation errors name fields as clients send them.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
