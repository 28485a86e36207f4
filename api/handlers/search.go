package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/logger"
	"github.com/freshroot/freshroot/services/discovery"
	"github.com/freshroot/freshroot/validation"
	"github.com/gin-gonic/gin"
)

const defaultResultsPerPage = 20

type SearchRequest struct {
	Query        string   `form:"query" validate:"max=200"`
	Lat          *float64 `form:"lat" validate:"omitempty,min=-90,max=90"`
	Lng          *float64 `form:"lng" validate:"omitempty,min=-180,max=180"`
	RadiusKm     float64  `form:"radius_km" validate:"min=0,max=20000"`
	Categories   []string `form:"category"`
	MinPrice     *int64   `form:"min_price" validate:"omitempty,min=0"`
	MaxPrice     *int64   `form:"max_price" validate:"omitempty,min=0"`
	Availability string   `form:"availability" validate:"omitempty,oneof=all in_stock pre_order"`
	Organic      bool     `form:"organic"`
	InSeason     bool     `form:"in_season"`
	VerifiedOnly bool     `form:"verified_only"`
	Freshness    string   `form:"freshness" validate:"valid_freshness"`
	Delivery     []string `form:"delivery" validate:"valid_delivery"`
	MinRating    float64  `form:"min_rating" validate:"min=0,max=5"`
	SortBy       string   `form:"sort" validate:"valid_sort"`
	PerPage      int      `form:"per_page" validate:"min=0,max=100"`
}

func (r *SearchRequest) setDefaults() {
	if r.PerPage == 0 {
		r.PerPage = defaultResultsPerPage
	}
}

func (r *SearchRequest) toQuery() discovery.Query {
	query := discovery.Query{
		Text:            r.Query,
		RadiusKm:        r.RadiusKm,
		Categories:      r.Categories,
		MinPriceCents:   r.MinPrice,
		MaxPriceCents:   r.MaxPrice,
		Availability:    r.Availability,
		Organic:         r.Organic,
		InSeason:        r.InSeason,
		VerifiedOnly:    r.VerifiedOnly,
		Freshness:       r.Freshness,
		DeliveryMethods: r.Delivery,
		MinSellerRating: r.MinRating,
		SortBy:          r.SortBy,
		PageSize:        r.PerPage,
	}

	if r.Lat != nil && r.Lng != nil {
		query.Position = &catalogdb.Position{Lat: *r.Lat, Lng: *r.Lng}
	}

	return query
}

type SearchResponse struct {
	Products   []discovery.Product       `json:"products"`
	Sellers    []discovery.SellerSummary `json:"sellers"`
	HasMore    bool                      `json:"has_more"`
	TotalFound int                       `json:"total_found"`
	SearchTime string                    `json:"search_time"`
}

func SetupSearch(router *gin.Engine, logger logger.Logger, catalogDB catalogdb.DB, validator *validation.Validator) {
	service := discovery.New(logger, catalogDB, catalogDB, catalogDB)
	router.GET("/search", handleSearch(service, logger, validator))

}

func handleSearch(service *discovery.Service, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := SearchRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			logger.Warn("could not extract expected params from search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request parameters"})
			return
		}
		request.setDefaults()

		if err := validator.Validate(request); err != nil {
			logger.Warn("could not validate search request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
			return
		}

		result, err := service.Search(c.Request.Context(), request.toQuery())
		if err != nil {
			if errors.Is(err, discovery.ErrMissingPosition) {
				logger.Warn("geographic search requested without a position")
				c.Abort()
				writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
				return
			}
			logger.Error("search failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		searchResponse := SearchResponse{
			Products:   result.Products,
			Sellers:    result.Sellers,
			HasMore:    result.HasMore,
			TotalFound: result.TotalFound,
			SearchTime: time.Since(result.StartedAt).String(),
		}

		writeResponse(c, searchResponse, http.StatusOK, nil)
	}
}
