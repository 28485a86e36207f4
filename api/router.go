package api

import (
	"net/http"

	"github.com/freshroot/freshroot/api/handlers"
	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/db/suggestdb"
	"github.com/freshroot/freshroot/logger"
	"github.com/freshroot/freshroot/validation"
	"github.com/gin-gonic/gin"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, catalogDB catalogdb.DB, suggestDB suggestdb.DB, validator *validation.Validator) {
	router.GET("/health", health())

	handlers.SetupSearch(router, logger, catalogDB, validator)
	handlers.SetupSuggestions(router, logger, suggestDB, catalogDB, validator)
	handlers.SetupCatalog(router, logger, catalogDB, validator)

}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter() *gin.Engine {
	router := gin.Default()
	router.UseRawPath = true
	router.Use(_CORSMiddleware())
	router.Use(gin.Recovery())
	router.Use(authMiddleware())

	return router
}
