package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"secondmarket-backend/internal/config"
	"secondmarket-backend/internal/infrastructure/database"
	"secondmarket-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Env:         "test",
		JWTSecret:   "test-secret",
		TokenTTL:    30 * time.Minute,
		FrontendURL: "http://localhost:3000",
	}
	return CreateApp(cfg, db, nil), db
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	code, _ := request(t, app, "POST", "/api/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(t, 201, code)
	code, result := request(t, app, "POST", "/api/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, 200, code)
	return result["data"].(map[string]interface{})["access_token"].(string)
}

func TestFullPurchaseFlow(t *testing.T) {
	app, db := setupApp(t)

	sellerToken := registerAndLogin(t, app, "Seller", "seller@example.com")
	buyerToken := registerAndLogin(t, app, "Buyer", "buyer@example.com")

	code, result := request(t, app, "POST", "/api/listings", sellerToken, map[string]interface{}{
		"title": "Mountain Bike", "description": "Barely used", "price": 250.0,
		"category": "Sports", "condition": "used", "location": "Berlin",
		"images": []string{"http://img/bike.jpg"},
	})
	require.Equal(t, 201, code)
	listingID := uint(result["data"].(map[string]interface{})["id"].(float64))

	code, _ = request(t, app, "POST", "/api/cart/add", buyerToken, map[string]interface{}{
		"product_id": listingID, "quantity": 1,
	})
	require.Equal(t, 200, code)

	code, result = request(t, app, "GET", "/api/cart", buyerToken, nil)
	require.Equal(t, 200, code)
	summary := result["data"].(map[string]interface{})["summary"].(map[string]interface{})
	assert.Equal(t, 250.0, summary["total_price"])

	code, result = request(t, app, "POST", "/api/checkout", buyerToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": listingID, "quantity": 1, "price": 250.0},
		},
		"shipping_address": map[string]string{"city": "Berlin"},
		"payment_info":     map[string]string{"method": "invoice"},
	})
	require.Equal(t, 201, code)
	orderID := uint(result["data"].(map[string]interface{})["order_id"].(float64))

	var cartCount int64
	db.Model(&models.CartItem{}).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)

	code, result = request(t, app, "GET", fmt.Sprintf("/api/orders/%d", orderID), buyerToken, nil)
	require.Equal(t, 200, code)
	items := result["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Mountain Bike", items[0].(map[string]interface{})["title"])

	// Review requires the completed order and lands on the seller
	code, _ = request(t, app, "POST", "/api/reviews", buyerToken, map[string]interface{}{
		"listing_id": listingID, "rating": 5, "comment": "Smooth deal",
	})
	require.Equal(t, 201, code)

	code, result = request(t, app, "GET", "/api/reviews/received", sellerToken, nil)
	require.Equal(t, 200, code)
	assert.Len(t, result["data"].([]interface{}), 1)

	code, result = request(t, app, "GET", "/api/dashboard/stats", sellerToken, nil)
	require.Equal(t, 200, code)
	stats := result["data"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["sales_count"])
	assert.Equal(t, 5.0, stats["average_rating"])
}

func TestBearerRequiredOnProtectedRoutes(t *testing.T) {
	app, _ := setupApp(t)

	for _, route := range []struct {
		method, path string
	}{
		{"GET", "/api/profile"},
		{"GET", "/api/cart"},
		{"POST", "/api/checkout"},
		{"GET", "/api/orders"},
		{"GET", "/api/messages/inbox"},
		{"GET", "/api/dashboard/stats"},
	} {
		req := httptest.NewRequest(route.method, route.path, bytes.NewReader(nil))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode, route.path)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), route.path)
	}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	app, _ := setupApp(t)

	for _, path := range []string{"/", "/health/json", "/api/listings", "/api/users/count"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, path)
	}
}
