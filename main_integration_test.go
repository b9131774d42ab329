package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api/middleware"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/auth"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

const testSecret = "integration-secret"

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	server   *httptest.Server
	catalog  *catalogue
	adminJWT string
}

func startTestApp(t *testing.T, policy string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Locale:            "nl-NL",
		Currency:          "EUR",
		CapacityPolicy:    policy,
		SeedSource:        config.SeedSourceBuiltin,
		JwtSecret:         testSecret,
		JwtTTL:            time.Hour,
		CorsAllowedOrigin: "*",
	}
	cat, err := openCatalogue(context.Background(), cfg, func() time.Time { return testNow })
	require.NoError(t, err)

	reservations := services.NewReservationService(cat.inventory, nil, cfg.CapacityPolicy, func() time.Time { return testNow })
	limiter := middleware.NewRateLimiterMiddleware(6000, 1000)
	srv := httptest.NewServer(api.SetupRouter(cfg, cat.listingService, reservations, limiter))
	t.Cleanup(srv.Close)

	token, err := auth.GenerateAdminToken("integration", testSecret, time.Hour)
	require.NoError(t, err)
	return &testApp{server: srv, catalog: cat, adminJWT: token}
}

func (a *testApp) do(t *testing.T, method, path, body string, admin bool) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+a.adminJWT)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

const contactJSON = `{"name":"Jan Jansen","email":"jan@example.com","phone":"+31 6 12345678"}`

func TestIntegration_Ping(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)
	resp, body := app.do(t, http.MethodGet, "/v1/ping", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
}

func TestIntegration_CatalogueShowsSeedWithMetrics(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	resp, body := app.do(t, http.MethodGet, "/v1/listings", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Data []services.ListingView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Data, 2)

	villa := page.Data[0]
	assert.Equal(t, "€ 485.000", villa.FormattedPrice)
	assert.Equal(t, 5, villa.Metrics.Availability.Available)
	assert.Equal(t, 79, villa.Metrics.Availability.PercentageSold)
	assert.Equal(t, "Almost Sold Out", villa.Metrics.Urgency.Label)

	penthouse := page.Data[1]
	assert.Equal(t, "€ 725.000", penthouse.FormattedPrice)
	assert.Equal(t, 3, penthouse.Metrics.Availability.Available)
	assert.Equal(t, 81, penthouse.Metrics.Availability.PercentageSold)
	assert.Equal(t, "Last Chance", penthouse.Metrics.Urgency.Label)
	assert.True(t, penthouse.Metrics.Urgency.Pulse)
}

func TestIntegration_ReserveUntilSoldOut(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	for i := 0; i < 3; i++ {
		resp, _ := app.do(t, http.MethodPost, "/v1/listings/2/reservations", contactJSON, false)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := app.do(t, http.MethodPost, "/v1/listings/2/reservations", contactJSON, false)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := app.do(t, http.MethodGet, "/v1/listings?status=sold-out", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"id":2`)
	assert.NotContains(t, string(body), `"id":1,`)

	resp, _ = app.do(t, http.MethodPost, "/v1/listings/1/reservations", `{"name":"Jan"}`, false)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	l, err := app.catalog.inventory.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 19, l.SoldUnits)
}

func TestIntegration_ConcurrentReservationsNeverOverbook(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(app.server.URL+"/v1/listings/1/reservations", "application/json", strings.NewReader(contactJSON))
			if !assert.NoError(t, err) {
				return
			}
			resp.Body.Close()
			mu.Lock()
			codes[resp.StatusCode]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, codes[http.StatusCreated])
	assert.Equal(t, 15, codes[http.StatusConflict])
	l, _ := app.catalog.inventory.Get(1)
	assert.Equal(t, 24, l.SoldUnits)
}

func TestIntegration_AdminLifecycle(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	resp, _ := app.do(t, http.MethodPost, "/v1/admin/listings", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := app.do(t, http.MethodPost, "/v1/admin/listings", "", true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Listing
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, "2025-01-01", created.SalesStartDate)

	path := fmt.Sprintf("/v1/admin/listings/%d", created.ID)
	resp, body = app.do(t, http.MethodPatch, path, `{"title":"Casa Jávea","soldUnits":25}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "soldUnits")

	resp, body = app.do(t, http.MethodPatch, path, `{"title":"Casa Jávea"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Casa Jávea")

	resp, _ = app.do(t, http.MethodDelete, path, "", true)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)

	require.NoError(t, deleteListing(context.Background(), app.server.URL, app.adminJWT, created.ID))
	resp, _ = app.do(t, http.MethodGet, fmt.Sprintf("/v1/listings/%d", created.ID), "", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Error(t, deleteListing(context.Background(), app.server.URL, app.adminJWT, created.ID))

	resp, body = app.do(t, http.MethodPost, "/v1/admin/listings", "", true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, 4, created.ID, "deleted ids are not reused")
}

func TestIntegration_Gallery(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	resp, body := app.do(t, http.MethodGet, "/v1/listings/1/gallery?kind=images&index=3", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var frame services.GalleryFrame
	require.NoError(t, json.Unmarshal(body, &frame))
	assert.Equal(t, 0, frame.Index)
	assert.Equal(t, 3, frame.Count)
	assert.Equal(t, 2, frame.Prev)
}

func TestPrintCatalogue(t *testing.T) {
	app := startTestApp(t, config.CapacityPolicyReject)

	var out bytes.Buffer
	require.NoError(t, printCatalogue(context.Background(), &out, app.catalog.listingService, models.StatusAvailable))
	assert.Contains(t, out.String(), "Moderne Villa - Costa Blanca")
	assert.Contains(t, out.String(), "€ 725.000")
	assert.Contains(t, out.String(), "2 listing(s), filter available")
}

func TestConfirmDeletion(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirmDeletion(strings.NewReader("7\n"), &out, 7))
	assert.False(t, confirmDeletion(strings.NewReader("y\n"), &out, 7))
	assert.False(t, confirmDeletion(strings.NewReader(""), &out, 7))
	assert.Contains(t, out.String(), "cannot be undone")
}

func TestCheckServeConfig_RequiresJwtSecretForAPI(t *testing.T) {
	noSecret := &config.Config{}
	assert.ErrorContains(t, checkServeConfig(noSecret, runModeAPI), "JWT_SECRET")
	assert.ErrorContains(t, checkServeConfig(noSecret, runModeAll), "JWT_SECRET")
	assert.NoError(t, checkServeConfig(noSecret, runModeBg))

	withSecret := &config.Config{JwtSecret: "s3cret"}
	assert.NoError(t, checkServeConfig(withSecret, runModeAPI))
	assert.NoError(t, checkServeConfig(withSecret, runModeAll))
}
