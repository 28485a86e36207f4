// Seed catalog shared by the handler tests. The query position used by the
// geo cases is (52.0, 19.0); Green Meadow sits ~5 km away, Stone Creek ~15 km,
// and Ghost Farm has no stored position at all.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testSellersPayload = map[string]any{
	"sellers": []map[string]any{
		{
			"id":           "green-meadow",
			"display_name": "Anna Nowak",
			"farm_name":    "Green Meadow Farm",
			"verified":     true,
			"lat":          52.045,
			"lng":          19.0,
		},
		{
			"id":           "stone-creek",
			"display_name": "Jan Kowalski",
			"farm_name":    "Stone Creek Dairy",
			"verified":     false,
			"lat":          52.135,
			"lng":          19.0,
		},
		{
			"id":           "ghost-farm",
			"display_name": "Ghost Farm",
			"farm_name":    "Ghost Farm",
			"verified":     true,
		},
	},
}

var testProductsPayload = map[string]any{
	"products": []map[string]any{
		{
			"id":               "prod-carrots-organic",
			"name":             "Organic Carrots",
			"category":         "vegetables",
			"price_cents":      300,
			"stock":            10,
			"organic":          true,
			"delivery_methods": []string{"pickup"},
			"seller_id":        "green-meadow",
		},
		{
			"id":               "prod-carrots-fresh",
			"name":             "Fresh Carrots",
			"description":      "grown with organic methods",
			"category":         "vegetables",
			"price_cents":      250,
			"stock":            5,
			"delivery_methods": []string{"home_delivery"},
			"seller_id":        "green-meadow",
		},
		{
			"id":               "prod-cheese",
			"name":             "Goat Cheese",
			"category":         "dairy",
			"price_cents":      1200,
			"stock":            3,
			"delivery_methods": []string{"market"},
			"seller_id":        "stone-creek",
		},
		{
			"id":          "prod-phantom",
			"name":        "Phantom Apples",
			"category":    "fruit",
			"price_cents": 400,
			"stock":       7,
			"seller_id":   "ghost-farm",
		},
	},
}

var testReviewsPayload = map[string]any{
	"reviews": []map[string]any{
		{"id": "rev-1", "seller_id": "green-meadow", "rating": 5},
		{"id": "rev-2", "seller_id": "green-meadow", "rating": 4},
		{"id": "rev-3", "seller_id": "stone-creek", "rating": 3},
		{"id": "rev-4", "seller_id": "stone-creek", "rating": 4},
	},
}

func seedCatalog(router *gin.Engine, assert *require.Assertions) {
	w := makeTestHTTPRequest(router, assert, http.MethodPut, "/catalog/sellers", defaultTestRequestHeaders, testSellersPayload, nil)
	assert.Equal(http.StatusNoContent, w.Code, "could not seed sellers")

	w = makeTestHTTPRequest(router, assert, http.MethodPut, "/catalog/products", defaultTestRequestHeaders, testProductsPayload, nil)
	assert.Equal(http.StatusNoContent, w.Code, "could not seed products")

	w = makeTestHTTPRequest(router, assert, http.MethodPut, "/catalog/reviews", defaultTestRequestHeaders, testReviewsPayload, nil)
	assert.Equal(http.StatusNoContent, w.Code, "could not seed reviews")

	w = makeTestHTTPRequest(router, assert, http.MethodPost, "/catalog/reindex", defaultTestRequestHeaders, nil, nil)
	assert.Equal(http.StatusNoContent, w.Code, "could not rebuild suggestion index")
}
