package listings

import (
	"errors"
	"strconv"

	"secondmarket-backend/internal/application/catalog"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *catalog.Service
}

// GET /api/listings — public browse with ?category=&search=&limit=&offset=
func (h *Handlers) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page, err := h.Service.List(c.Context(), catalog.ListFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched successfully", page.Listings, fiber.Map{
		"total":  page.Total,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// POST /api/listings
func (h *Handlers) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Category    string   `json:"category"`
		Condition   string   `json:"condition"`
		Location    string   `json:"location"`
		Images      []string `json:"images"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Service.Create(c.Context(), user.ID, catalog.CreateInput{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Condition:   body.Condition,
		Location:    body.Location,
		Images:      body.Images,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrBadInput) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GET /api/listings/my
func (h *Handlers) Mine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	listings, err := h.Service.GetMine(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GET /api/listings/:id — public detail; bumps the view counter
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

// PUT /api/listings/:id — partial update, owner only
func (h *Handlers) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Condition   *string  `json:"condition"`
		Location    *string  `json:"location"`
		Images      []string `json:"images"`
		Status      *string  `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	err = h.Service.Update(c.Context(), user.ID, id, catalog.UpdateInput{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Condition:   body.Condition,
		Location:    body.Location,
		Images:      body.Images,
		Status:      body.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, catalog.ErrForbidden):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case errors.Is(err, catalog.ErrNoFields), errors.Is(err, catalog.ErrBadInput):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing updated successfully", fiber.Map{"id": id}, nil)
}

// DELETE /api/listings/:id — owner only
func (h *Handlers) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := listingID(c)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), user.ID, id); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, catalog.ErrForbidden):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing deleted successfully", fiber.Map{"id": id}, nil)
}

func listingID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
