// Common test helpers
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/freshroot/freshroot/config"
	"github.com/freshroot/freshroot/db/catalogdb"
	"github.com/freshroot/freshroot/db/suggestdb"
	"github.com/freshroot/freshroot/logger"
	"github.com/freshroot/freshroot/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}

type testCase struct {
	name               string
	requestHeaders     map[string]string
	requestBody        map[string]any
	queryParams        map[string]string
	expectedStatus     int
	expectedProductIDs []string
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupTestServer(t *testing.T, assert *require.Assertions) (*gin.Engine, func()) {

	tempDir := t.TempDir()
	t.Setenv("ENV", "test")
	t.Setenv("STORAGE_PATH", tempDir)
	t.Setenv("CATALOG_DB_PATH", filepath.Join(tempDir, "catalog.db"))
	t.Setenv("SUGGEST_INDEX_PATH", "suggest.bleve")

	cfg, err := config.Load("test")
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()

	catalogDB, err := catalogdb.New(testLogger, cfg)
	assert.NoError(err, "could not create catalog database")

	suggestDB, err := suggestdb.New(testLogger, cfg)
	assert.NoError(err, "could not create suggestion index")

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, catalogDB, validator)
	SetupSuggestions(router, testLogger, suggestDB, catalogDB, validator)
	SetupCatalog(router, testLogger, catalogDB, validator)

	cleanup := func() {
		var err error
		err = catalogDB.Close()
		assert.NoError(err, "could not close catalog database")
		err = suggestDB.Close()
		assert.NoError(err, "could not close suggestion index")
	}

	return router, cleanup
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, queryParams map[string]string) *httptest.ResponseRecorder {

	var err error
	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		endpoint = endpoint + "?"
		for key, value := range queryParams {
			if endpoint[len(endpoint)-1] != '?' {
				endpoint = endpoint + "&"
			}
			endpoint = endpoint + key + "=" + value
		}
	}
	var jsonBody []byte
	var req *http.Request
	if requestBodyMap != nil {
		jsonBody, err = json.Marshal(requestBodyMap)
		assert.NoError(err)
	}

	slog.Info("Making test request", "method", method, "endpoint", endpoint, "headers", headers, "body", string(jsonBody))

	if len(jsonBody) > 0 {
		req, err = http.NewRequest(method, endpoint, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func decodeSearchData(assert *require.Assertions, body *bytes.Buffer) map[string]any {
	decoded := map[string]any{}
	assert.NoError(json.Unmarshal(body.Bytes(), &decoded))

	data, ok := decoded["data"].(map[string]any)
	assert.True(ok, "response should carry a data object")
	return data
}

func productIDsFromData(assert *require.Assertions, data map[string]any) []string {
	rawProducts, ok := data["products"].([]any)
	assert.True(ok, "data should carry a products list")

	ids := []string{}
	for _, rawProduct := range rawProducts {
		product, ok := rawProduct.(map[string]any)
		assert.True(ok)
		id, ok := product["id"].(string)
		assert.True(ok)
		ids = append(ids, id)
	}
	return ids
}
