package handlers

import (
	"net/http"

	"github.com/freshroot/freshroot/db/suggestdb"
	"github.com/freshroot/freshroot/logger"
	"github.com/freshroot/freshroot/services/suggest"
	"github.com/freshroot/freshroot/validation"
	"github.com/gin-gonic/gin"
)

type SuggestionsRequest struct {
	Query string `form:"q" validate:"required,valid_query,min=1,max=100"`
}

type SuggestionsResponse struct {
	Suggestions []suggestdb.Suggestion `json:"suggestions"`
}

func SetupSuggestions(router *gin.Engine, logger logger.Logger, suggestDB suggestdb.DB, catalog suggest.Catalog, validator *validation.Validator) {
	service := suggest.New(logger, suggestDB, catalog)
	router.GET("/suggestions", handleSuggestions(service, logger, validator))
	router.POST("/catalog/reindex", handleReindex(service, logger))

}

func handleSuggestions(service *suggest.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SuggestionsRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from suggestions request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate suggestions request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		suggestions, err := service.Suggest(request.Query)
		if err != nil {
			logger.Error("suggestions lookup failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, SuggestionsResponse{Suggestions: suggestions}, http.StatusOK, nil)
	}
}

func handleReindex(service *suggest.Service, logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Rebuild(c.Request.Context()); err != nil {
			logger.Error("suggestion reindex failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}
