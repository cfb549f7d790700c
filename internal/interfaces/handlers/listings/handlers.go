package listings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	listsvc "gearshare-backend/internal/application/listings"
	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
}

// POST /listing/create/user_id=:user_id — 201 {listing_id, date_created, date_last_modified, status}
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil {
		return response.Raise(c, "Invalid user_id", fiber.StatusBadRequest)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Raise(c, "Invalid request body", fiber.StatusBadRequest)
	}

	// Numeric fields must parse before any write happens.
	totalValue, err := asMoney(body["total_value"])
	if err != nil {
		return response.Raise(c, "Missing or invalid field: total_value", fiber.StatusBadRequest)
	}
	hourlyRate, err := asMoney(body["hourly_rate"])
	if err != nil {
		return response.Raise(c, "Missing or invalid field: hourly_rate", fiber.StatusBadRequest)
	}
	dailyRate, err := asMoney(body["daily_rate"])
	if err != nil {
		return response.Raise(c, "Missing or invalid field: daily_rate", fiber.StatusBadRequest)
	}
	weeklyRate, err := asMoney(body["weekly_rate"])
	if err != nil {
		return response.Raise(c, "Missing or invalid field: weekly_rate", fiber.StatusBadRequest)
	}
	categoryID, err := asID(body["category_id"])
	if err != nil {
		return response.Raise(c, "Missing or invalid field: category_id", fiber.StatusBadRequest)
	}

	listing, err := h.Service.CreateListing(c.Context(), listsvc.CreateListingInput{
		OwnerID:         userID,
		CategoryID:      categoryID,
		Name:            asString(body["name"]),
		ItemDescription: asString(body["item_description"]),
		TotalValue:      totalValue,
		HourlyRate:      hourlyRate,
		DailyRate:       dailyRate,
		WeeklyRate:      weeklyRate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Raise(c, "UserID does not match any existing user", fiber.StatusBadRequest)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"listing_id":         listing.ID,
		"date_created":       listing.DateCreated,
		"date_last_modified": listing.DateLastModified,
		"status":             listing.Status,
	})
}

// DELETE /listing/delete/listing_id=:listing_id — 200 {listing_id, date_deleted}
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	listingID, err := strconv.ParseInt(c.Params("listing_id"), 10, 64)
	if err != nil {
		return response.Raise(c, "Invalid listing_id", fiber.StatusBadRequest)
	}

	listing, err := h.Service.DeleteListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return response.Raise(c, "Listing ID does not match any existing listing.", fiber.StatusBadRequest)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"listing_id":   listing.ID,
		"date_deleted": listing.DateLastModified,
	})
}

// GET /listing/get/listing_id=:listing_id — 200 listing JSON
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listingID, err := strconv.ParseInt(c.Params("listing_id"), 10, 64)
	if err != nil {
		return response.Raise(c, "Invalid listing_id", fiber.StatusBadRequest)
	}

	listing, err := h.Service.GetListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return response.Raise(c, "Listing ID does not match any existing listing.", fiber.StatusBadRequest)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(listing)
}

// GET /listing/search?q=&lat=&lon=&radius_m= — 200 {hits, total}
func (h *Handlers) SearchListings(c *fiber.Ctx) error {
	opts := listsvc.SearchOptions{}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return response.Raise(c, "Missing or invalid field: limit", fiber.StatusBadRequest)
		}
		opts.Limit = n
	}
	if v := c.Query("radius_m"); v != "" {
		radius, err := strconv.ParseInt(v, 10, 64)
		if err != nil || radius <= 0 {
			return response.Raise(c, "Missing or invalid field: radius_m", fiber.StatusBadRequest)
		}
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		if errLat != nil || errLon != nil {
			return response.Raise(c, "lat and lon are required with radius_m", fiber.StatusBadRequest)
		}
		opts.RadiusMeters = radius
		opts.Lat = lat
		opts.Lon = lon
	}

	result, err := h.Service.Search(c.Context(), c.Query("q"), opts)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// --- parse helpers ---

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// asMoney accepts a JSON number or numeric string and requires it to be a
// non-negative amount.
func asMoney(v interface{}) (float64, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount: %f", f)
	}
	return f, nil
}

func asFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return 0, errors.New("missing value")
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func asID(v interface{}) (int64, error) {
	switch x := v.(type) {
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("not an integer: %v", x)
		}
		return int64(x), nil
	case string:
		return strconv.ParseInt(x, 10, 64)
	case nil:
		return 0, errors.New("missing value")
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
