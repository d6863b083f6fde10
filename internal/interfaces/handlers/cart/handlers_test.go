package cart

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	cartsvc "secondmarket-backend/internal/application/cart"
	"secondmarket-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*Handlers, *gorm.DB, *models.User, *models.Listing) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.CartItem{}))

	buyer := &models.User{Name: "Buyer", Email: "buyer@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(buyer).Error)
	seller := &models.User{Name: "Seller", Email: "seller@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(seller).Error)
	listing := &models.Listing{
		UserID: seller.ID, Title: "Bike", Price: 120,
		Images: []byte(`["http://img/1.jpg","http://img/2.jpg"]`),
		Status: models.ListingActive,
	}
	require.NoError(t, db.Create(listing).Error)

	return &Handlers{Service: &cartsvc.Service{DB: db}}, db, buyer, listing
}

func cartApp(h *Handlers, u *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", u)
		return c.Next()
	})
	app.Get("/api/cart", h.Get)
	app.Get("/api/cart/count", h.Count)
	app.Post("/api/cart/add", h.Add)
	app.Put("/api/cart/update", h.Update)
	app.Delete("/api/cart/remove", h.Remove)
	app.Delete("/api/cart/clear", h.Clear)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) int {
	t.Helper()
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAddTwiceIncrementsSingleLine(t *testing.T) {
	h, db, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	code := doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 2})
	assert.Equal(t, 200, code)
	code = doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 3})
	assert.Equal(t, 200, code)

	var lines []models.CartItem
	require.NoError(t, db.Where("user_id = ?", buyer.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddRejectsBadQuantityAndMissingListing(t *testing.T) {
	h, _, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	code := doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": -1})
	assert.Equal(t, 400, code)

	code = doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": 99999, "quantity": 1})
	assert.Equal(t, 404, code)
}

func TestAddRejectsInactiveListing(t *testing.T) {
	h, db, buyer, listing := setupCartTest(t)
	require.NoError(t, db.Model(listing).Update("status", models.ListingSold).Error)
	app := cartApp(h, buyer)

	code := doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 1})
	assert.Equal(t, 404, code)
}

func TestUpdateSetsExactlyAndZeroRemoves(t *testing.T) {
	h, db, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 4})

	code := doJSON(t, app, "PUT", "/api/cart/update", map[string]interface{}{"product_id": listing.ID, "quantity": 2})
	assert.Equal(t, 200, code)
	var line models.CartItem
	require.NoError(t, db.Where("user_id = ?", buyer.ID).First(&line).Error)
	assert.Equal(t, 2, line.Quantity)

	code = doJSON(t, app, "PUT", "/api/cart/update", map[string]interface{}{"product_id": listing.ID, "quantity": 0})
	assert.Equal(t, 200, code)
	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCartWithSummary(t *testing.T) {
	h, _, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 2})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	items := data["cart_items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Bike", first["title"])
	assert.Equal(t, "Seller", first["seller_name"])
	assert.Equal(t, "http://img/1.jpg", first["image"])

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["total_items"])
	assert.Equal(t, 240.0, summary["total_price"])
}

func TestGetCartDegradesWhenListingGone(t *testing.T) {
	h, db, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 2})
	require.NoError(t, db.Delete(listing).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	items := data["cart_items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Unknown Product", first["title"])
	assert.Equal(t, "Unknown Seller", first["seller_name"])
	assert.Equal(t, float64(0), first["price"])

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(0), summary["total_price"])
}

func TestCountSumsQuantities(t *testing.T) {
	h, db, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	second := &models.Listing{UserID: listing.UserID, Title: "Helmet", Price: 30, Status: models.ListingActive}
	require.NoError(t, db.Create(second).Error)

	doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": listing.ID, "quantity": 2})
	doJSON(t, app, "POST", "/api/cart/add", map[string]interface{}{"product_id": second.ID, "quantity": 3})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cart/count", nil))
	require.NoError(t, err)
	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["count"])
}

func TestRemoveAndClearAreIdempotent(t *testing.T) {
	h, _, buyer, listing := setupCartTest(t)
	app := cartApp(h, buyer)

	code := doJSON(t, app, "DELETE", "/api/cart/remove", map[string]interface{}{"product_id": listing.ID})
	assert.Equal(t, 200, code)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/cart/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
