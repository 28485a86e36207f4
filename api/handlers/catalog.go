package handlers

import (
	"net/http"
	"time"

	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/logger"
	"github.com/freshroot/freshroot/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Catalog ingest is the engine's data-loading surface. Moderation and seller
// authentication live upstream of it.

type ProductUpsert struct {
	ID              string    `json:"id"`
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	Category        string    `json:"category" validate:"max=100"`
	PriceCents      int64     `json:"price_cents" validate:"min=0"`
	Stock           int       `json:"stock" validate:"min=0"`
	Organic         bool      `json:"organic"`
	ActiveMonths    []int     `json:"active_months" validate:"omitempty,dive,min=1,max=12"`
	Freshness       string    `json:"freshness" validate:"valid_freshness"`
	DeliveryMethods []string  `json:"delivery_methods" validate:"valid_delivery"`
	SellerID        string    `json:"seller_id" validate:"required"`
	Rating          float64   `json:"rating" validate:"min=0,max=5"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status" validate:"omitempty,oneof=active inactive"`
}

type SellerUpsert struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name" validate:"required,max=200"`
	FarmName    string   `json:"farm_name" validate:"max=200"`
	Verified    bool     `json:"verified"`
	Lat         *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng         *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
	Address     string   `json:"address" validate:"max=500"`
}

type ReviewUpsert struct {
	ID       string  `json:"id"`
	SellerID string  `json:"seller_id" validate:"required"`
	Rating   float64 `json:"rating" validate:"min=1,max=5"`
	Status   string  `json:"status" validate:"omitempty,oneof=published pending removed"`
}

type CatalogProductsRequest struct {
	Products []ProductUpsert `json:"products" validate:"required,min=1,dive"`
}

type CatalogSellersRequest struct {
	Sellers []SellerUpsert `json:"sellers" validate:"required,min=1,dive"`
}

type CatalogReviewsRequest struct {
	Reviews []ReviewUpsert `json:"reviews" validate:"required,min=1,dive"`
}

func SetupCatalog(router *gin.Engine, logger logger.Logger, catalogDB catalogdb.DB, validator *validation.Validator) {
	router.PUT("/catalog/products", handlePutProducts(catalogDB, logger, validator))
	router.PUT("/catalog/sellers", handlePutSellers(catalogDB, logger, validator))
	router.PUT("/catalog/reviews", handlePutReviews(catalogDB, logger, validator))

}

func handlePutProducts(catalogDB catalogdb.DB, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := CatalogProductsRequest{}
		if !bindAndValidate(c, logger, validator, &request) {
			return
		}

		products := make([]catalogdb.Product, len(request.Products))
		for i, upsert := range request.Products {
			products[i] = upsert.toProduct()
		}

		if err := catalogDB.PutProducts(c.Request.Context(), products); err != nil {
			logger.Error("could not store products", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}

func handlePutSellers(catalogDB catalogdb.DB, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := CatalogSellersRequest{}
		if !bindAndValidate(c, logger, validator, &request) {
			return
		}

		sellers := make([]catalogdb.Seller, len(request.Sellers))
		for i, upsert := range request.Sellers {
			sellers[i] = upsert.toSeller()
		}

		if err := catalogDB.PutSellers(c.Request.Context(), sellers); err != nil {
			logger.Error("could not store sellers", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}

func handlePutReviews(catalogDB catalogdb.DB, logger logger.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := CatalogReviewsRequest{}
		if !bindAndValidate(c, logger, validator, &request) {
			return
		}

		reviews := make([]catalogdb.Review, len(request.Reviews))
		for i, upsert := range request.Reviews {
			reviews[i] = upsert.toReview()
		}

		if err := catalogDB.PutReviews(c.Request.Context(), reviews); err != nil {
			logger.Error("could not store reviews", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusInternalServerError, []string{err.Error()})
			return
		}

		writeResponse(c, nil, http.StatusNoContent, nil)
	}
}

func bindAndValidate(c *gin.Context, logger logger.Logger, validator *validation.Validator, request any) bool {
	if err := c.ShouldBindJSON(request); err != nil {
		logger.Warn("could not extract expected params from catalog request", "err", err.Error())
		c.Abort()
		writeResponse(c, nil, http.StatusUnprocessableEntity, []string{"failed to extract request body parameters"})
		return false
	}

	if err := validator.Validate(request); err != nil {
		logger.Warn("could not validate catalog request", "err", err.Error())
		c.Abort()
		writeResponse(c, nil, http.StatusNotAcceptable, []string{err.Error()})
		return false
	}

	return true
}

func (u ProductUpsert) toProduct() catalogdb.Product {
	product := catalogdb.Product{
		ID:              u.ID,
		Name:            u.Name,
		Description:     u.Description,
		Category:        u.Category,
		PriceCents:      u.PriceCents,
		Stock:           u.Stock,
		Organic:         u.Organic,
		Freshness:       u.Freshness,
		DeliveryMethods: u.DeliveryMethods,
		SellerID:        u.SellerID,
		Rating:          u.Rating,
		CreatedAt:       u.CreatedAt,
		Status:          u.Status,
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	if product.Status == "" {
		product.Status = catalogdb.StatusActive
	}
	for _, month := range u.ActiveMonths {
		product.ActiveMonths = append(product.ActiveMonths, time.Month(month))
	}

	return product
}

func (u SellerUpsert) toSeller() catalogdb.Seller {
	seller := catalogdb.Seller{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		FarmName:    u.FarmName,
		Verified:    u.Verified,
		Address:     u.Address,
	}

	if seller.ID == "" {
		seller.ID = uuid.NewString()
	}
	if u.Lat != nil && u.Lng != nil {
		seller.Position = &catalogdb.Position{Lat: *u.Lat, Lng: *u.Lng}
	}

	return seller
}

func (u ReviewUpsert) toReview() catalogdb.Review {
	review := catalogdb.Review{
		ID:       u.ID,
		SellerID: u.SellerID,
		Rating:   u.Rating,
		Status:   u.Status,
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.Status == "" {
		review.Status = catalogdb.ReviewStatusPublished
	}

	return review
}
