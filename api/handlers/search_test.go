package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var searchHandlerTestCases = []testCase{
	{
		name:           "QueryTooLong",
		queryParams:    map[string]string{"query": strings.Repeat("a", 201)},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "InvalidPerPage",
		queryParams:    map[string]string{"per_page": "-1"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "PerPageTooLarge",
		queryParams:    map[string]string{"per_page": "101"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "InvalidSortKey",
		queryParams:    map[string]string{"sort": "price"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "InvalidDeliveryMethod",
		queryParams:    map[string]string{"delivery": "drone"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "InvalidFreshness",
		queryParams:    map[string]string{"freshness": "ancient"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "InvalidMinRating",
		queryParams:    map[string]string{"min_rating": "6"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "LatitudeOutOfRange",
		queryParams:    map[string]string{"lat": "100", "lng": "19", "radius_km": "10"},
		expectedStatus: http.StatusNotAcceptable,
	},
	{
		name:           "RadiusWithoutPosition",
		queryParams:    map[string]string{"radius_km": "10"},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:           "DistanceSortWithoutPosition",
		queryParams:    map[string]string{"sort": "distance"},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:               "GeoSearchWithinRadius",
		queryParams:        map[string]string{"lat": "52.0", "lng": "19.0", "radius_km": "10", "sort": "distance"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-carrots-fresh", "prod-carrots-organic"},
	},
	{
		name:               "GeoSearchWiderRadius",
		queryParams:        map[string]string{"lat": "52.0", "lng": "19.0", "radius_km": "20", "sort": "price_low"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-carrots-fresh", "prod-carrots-organic", "prod-cheese"},
	},
	{
		name:               "TextSearchNameBoost",
		queryParams:        map[string]string{"query": "organic"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-carrots-organic", "prod-carrots-fresh"},
	},
	{
		name:               "MinimumSellerRating",
		queryParams:        map[string]string{"min_rating": "4"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-carrots-fresh", "prod-carrots-organic"},
	},
	{
		name:               "DeliveryMethodFilter",
		queryParams:        map[string]string{"delivery": "market"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-cheese"},
	},
	{
		name:               "VerifiedOnly",
		queryParams:        map[string]string{"verified_only": "true", "category": "dairy"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{},
	},
	{
		name:               "EmptyCategoryPool",
		queryParams:        map[string]string{"category": "flowers"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{},
	},
	{
		name:               "PriceRange",
		queryParams:        map[string]string{"min_price": "260", "max_price": "500", "sort": "price_low"},
		expectedStatus:     http.StatusOK,
		expectedProductIDs: []string{"prod-carrots-organic", "prod-phantom"},
	},
}

func TestSearchHandler(t *testing.T) {
	assert := require.New(t)

	router, cleanup := setupTestServer(t, assert)
	defer cleanup()
	seedCatalog(router, assert)

	for _, testCase := range searchHandlerTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			w := makeTestHTTPRequest(router, assert, http.MethodGet, "/search", nil, nil, testCase.queryParams)

			assert.Equal(testCase.expectedStatus, w.Code, "unexpected status for %s: %s", testCase.name, w.Body.String())

			if testCase.expectedProductIDs == nil {
				return
			}

			data := decodeSearchData(assert, w.Body)
			assert.Equal(testCase.expectedProductIDs, productIDsFromData(assert, data))
		})
	}
}

func TestSearchHandlerPagination(t *testing.T) {
	assert := require.New(t)

	router, cleanup := setupTestServer(t, assert)
	defer cleanup()
	seedCatalog(router, assert)

	w := makeTestHTTPRequest(router, assert, http.MethodGet, "/search", nil, nil, map[string]string{"per_page": "2", "sort": "price_low"})
	assert.Equal(http.StatusOK, w.Code)

	data := decodeSearchData(assert, w.Body)
	products := productIDsFromData(assert, data)
	assert.Len(products, 2)
	assert.Equal(true, data["has_more"])
	assert.Equal(float64(4), data["total_found"])
}

func TestSearchHandlerSellerList(t *testing.T) {
	assert := require.New(t)

	router, cleanup := setupTestServer(t, assert)
	defer cleanup()
	seedCatalog(router, assert)

	w := makeTestHTTPRequest(router, assert, http.MethodGet, "/search", nil, nil, map[string]string{"category": "vegetables"})
	assert.Equal(http.StatusOK, w.Code)

	data := decodeSearchData(assert, w.Body)
	rawSellers, ok := data["sellers"].([]any)
	assert.True(ok)
	assert.Len(rawSellers, 1)

	seller, ok := rawSellers[0].(map[string]any)
	assert.True(ok)
	assert.Equal("green-meadow", seller["id"])
	assert.Equal(float64(2), seller["product_count"])
	assert.Equal("Green Meadow Farm", seller["farm_name"])
}
