package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/relations"
	"github.com/Rejoice2374/Homely-API/store"
)

type WishlistController struct {
	engine *relations.Engine
}

func NewWishlistController(engine *relations.Engine) *WishlistController {
	return &WishlistController{engine: engine}
}

type addWishlistRequest struct {
	PropertyID string `json:"propertyId"`
}

// AddWishlist creates a wishlist entry for the caller. A failed secondary
// write to the listing's wishlistedBy field is logged and still reported as
// created, because the entry itself is durable and authoritative.
func (wc *WishlistController) AddWishlist(c echo.Context) error {
	user := c.Get("user").(models.User)

	var req addWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.PropertyID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Property ID is required"})
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	entry, err := wc.engine.AddWishlist(c.Request().Context(), user.ID, propertyID)
	if err != nil {
		var pw *relations.PartialWriteError
		switch {
		case errors.As(err, &pw):
			log.Printf("Wishlist entry %s created but listing ref failed: %v", entry.ID.Hex(), pw)
		case errors.Is(err, relations.ErrAlreadyWishlisted):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Already in wishlist"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add to wishlist"})
		}
	}

	return c.JSON(http.StatusCreated, entry)
}

// RemoveWishlist deletes the caller's wishlist entry for the given property.
func (wc *WishlistController) RemoveWishlist(c echo.Context) error {
	user := c.Get("user").(models.User)

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	if err := wc.engine.RemoveWishlist(c.Request().Context(), user.ID, propertyID); err != nil {
		var pw *relations.PartialWriteError
		switch {
		case errors.As(err, &pw):
			log.Printf("Wishlist entry removed but listing ref cleanup failed: %v", pw)
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Wishlist item not found"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove from wishlist"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

// GetWishlist resolves the caller's wishlist entries to listings. The entry
// collection is the source of truth; listings are never scanned for
// membership.
func (wc *WishlistController) GetWishlist(c echo.Context) error {
	user := c.Get("user").(models.User)

	properties, err := wc.engine.UserWishlist(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wishlist"})
	}
	return c.JSON(http.StatusOK, properties)
}
