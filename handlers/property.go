package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/relations"
	"github.com/Rejoice2374/Homely-API/store"
	"github.com/Rejoice2374/Homely-API/utils"
)

const listingsCacheTTL = 5 * time.Minute

type PropertyController struct {
	properties store.PropertyStore
	engine     *relations.Engine
}

func NewPropertyController(properties store.PropertyStore, engine *relations.Engine) *PropertyController {
	return &PropertyController{
		properties: properties,
		engine:     engine,
	}
}

// CreateProperty creates a listing owned by the caller and links it into the
// owner's properties set. A failed linkage write is logged and the listing is
// still returned as created.
func (pc *PropertyController) CreateProperty(c echo.Context) error {
	user := c.Get("user").(models.User)

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if len(property.PropertyImages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No image URLs supplied"})
	}
	if err := utils.ValidateProperty(property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := pc.engine.CreateListing(c.Request().Context(), user, property)
	if err != nil {
		var pw *relations.PartialWriteError
		if !errors.As(err, &pw) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
		}
		log.Printf("Listing %s created but owner linkage failed: %v", created.ID.Hex(), pw)
	}

	pc.invalidateListings(c)
	return c.JSON(http.StatusCreated, created)
}

// ListAvailable returns every available listing, served from the redis cache
// when warm.
func (pc *PropertyController) ListAvailable(c echo.Context) error {
	ctx := c.Request().Context()

	var cached []models.Property
	if hit, err := utils.GetCached(ctx, utils.AvailableListingsKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.properties.ListByStatus(ctx, models.StatusAvailable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	if properties == nil {
		properties = []models.Property{}
	}

	if err := utils.SetCached(ctx, utils.AvailableListingsKey, properties, listingsCacheTTL); err != nil {
		log.Printf("Failed to cache listings: %v", err)
	}
	return c.JSON(http.StatusOK, properties)
}

// ListMine returns the caller's own listings.
func (pc *PropertyController) ListMine(c echo.Context) error {
	user := c.Get("user").(models.User)

	properties, err := pc.properties.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	if properties == nil {
		properties = []models.Property{}
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	property, err := pc.properties.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, property)
}

// ToggleWishlist is the legacy PUT /api/property/:id surface: it flips the
// caller's wishlist relation for the listing through the same engine path as
// /api/wishlist, so the entry collection stays authoritative.
func (pc *PropertyController) ToggleWishlist(c echo.Context) error {
	user := c.Get("user").(models.User)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	wishlisted, err := pc.engine.ToggleWishlist(c.Request().Context(), user.ID, id)
	if err != nil {
		var pw *relations.PartialWriteError
		switch {
		case errors.As(err, &pw):
			log.Printf("Wishlist toggle degraded for property %s: %v", id.Hex(), pw)
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to update wishlist"})
		}
	}

	property, err := pc.properties.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"property":   property,
		"wishlisted": wishlisted,
	})
}

// UpdateProperty replaces the mutable listing fields. Only the owner or an
// admin may update.
func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	user := c.Get("user").(models.User)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	property, err := pc.properties.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.UserID != user.ID && user.Role != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var update models.Property
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := utils.ValidateProperty(update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updated, err := pc.properties.Update(c.Request().Context(), id, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	pc.invalidateListings(c)
	return c.JSON(http.StatusOK, updated)
}

// DeleteProperty removes a listing. Only the owner or an admin may delete.
func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	user := c.Get("user").(models.User)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	property, err := pc.properties.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.UserID != user.ID && user.Role != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	if err := pc.properties.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}

	pc.invalidateListings(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) invalidateListings(c echo.Context) {
	if err := utils.InvalidateCache(c.Request().Context(), utils.AvailableListingsKey); err != nil {
		log.Printf("Failed to invalidate listings cache: %v", err)
	}
}
