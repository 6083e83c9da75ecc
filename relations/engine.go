// Package relations maintains every cross-document relationship in the
// system: listing ownership, wishlist membership and the mutual whitelist
// between users. Each relationship is stored on both sides and both copies
// are written in separate, non-atomic operations; this package owns the write
// ordering and the partial-failure contract for those dual writes.
package relations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Rejoice2374/Homely-API/models"
	"github.com/Rejoice2374/Homely-API/store"
)

var (
	// ErrAlreadyWishlisted signals that a wishlist entry already exists for
	// the (user, property) pair.
	ErrAlreadyWishlisted = errors.New("relations: already wishlisted")
)

// PartialWriteError reports that a primary write succeeded but the secondary
// denormalization write did not. The primary document is durable; only the
// redundant reference on the other side is stale. Callers should treat the
// operation as a degraded success, not a failure. No compensation or retry is
// attempted here.
type PartialWriteError struct {
	Op  string
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("relations: %s: secondary write failed: %v", e.Op, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// Engine orchestrates the dual-write sequences. It is the sole writer of
// user.properties, user.whitelist and property.wishlistedBy.
type Engine struct {
	users      store.UserStore
	properties store.PropertyStore
	wishlists  store.WishlistStore
}

func NewEngine(users store.UserStore, properties store.PropertyStore, wishlists store.WishlistStore) *Engine {
	return &Engine{
		users:      users,
		properties: properties,
		wishlists:  wishlists,
	}
}

// CreateListing persists a new listing owned by the given user and then links
// it into the owner's properties set. The agent fields are snapshotted from
// the owner at this instant. If the linkage write fails the listing still
// stands on its own and the error returned is a *PartialWriteError carrying
// no rollback: the owner's properties view is merely incomplete.
func (e *Engine) CreateListing(ctx context.Context, owner models.User, property models.Property) (models.Property, error) {
	now := time.Now()
	property.UserID = owner.ID
	property.AgentName = owner.Firstname + " " + owner.Lastname
	property.AgentContact = owner.Email
	if property.AgentContact == "" {
		property.AgentContact = owner.PhoneNumber
	}
	property.AgentImage = owner.Picture
	if property.PropertyStatus == "" {
		property.PropertyStatus = models.StatusAvailable
	}
	property.WishlistedBy = []primitive.ObjectID{}
	property.CreatedAt = now
	property.UpdatedAt = now

	created, err := e.properties.Create(ctx, property)
	if err != nil {
		return models.Property{}, err
	}

	if err := e.users.AppendProperty(ctx, owner.ID, created.ID); err != nil {
		return created, &PartialWriteError{Op: "link listing to owner", Err: err}
	}
	return created, nil
}

// AddWishlist creates a wishlist entry for (userID, propertyID) and then
// appends the entry id to the property's wishlistedBy collection. The
// existence check runs first; a concurrent add that slips past it is caught
// by the store's unique index and reported the same way.
func (e *Engine) AddWishlist(ctx context.Context, userID, propertyID primitive.ObjectID) (models.Wishlist, error) {
	if _, err := e.properties.GetByID(ctx, propertyID); err != nil {
		return models.Wishlist{}, err
	}

	_, err := e.wishlists.Find(ctx, userID, propertyID)
	if err == nil {
		return models.Wishlist{}, ErrAlreadyWishlisted
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Wishlist{}, err
	}

	entry, err := e.wishlists.Create(ctx, models.Wishlist{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEntry) {
			return models.Wishlist{}, ErrAlreadyWishlisted
		}
		return models.Wishlist{}, err
	}

	if err := e.properties.AppendWishlistRef(ctx, propertyID, entry.ID); err != nil {
		return entry, &PartialWriteError{Op: "add wishlist ref to property", Err: err}
	}
	return entry, nil
}

// RemoveWishlist deletes the wishlist entry for (userID, propertyID) and then
// filters its id out of the property's wishlistedBy collection. Returns
// store.ErrNotFound when no entry exists.
func (e *Engine) RemoveWishlist(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	deleted, err := e.wishlists.DeleteByPair(ctx, userID, propertyID)
	if err != nil {
		return err
	}

	if err := e.properties.RemoveWishlistRef(ctx, propertyID, deleted.ID); err != nil {
		return &PartialWriteError{Op: "remove wishlist ref from property", Err: err}
	}
	return nil
}

// ToggleWishlist adds the relation when absent and removes it when present.
// It reports whether the relation exists after the call.
func (e *Engine) ToggleWishlist(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	_, err := e.wishlists.Find(ctx, userID, propertyID)
	switch {
	case err == nil:
		return false, e.RemoveWishlist(ctx, userID, propertyID)
	case errors.Is(err, store.ErrNotFound):
		if _, err := e.AddWishlist(ctx, userID, propertyID); err != nil {
			var pw *PartialWriteError
			if errors.As(err, &pw) {
				return true, err
			}
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// UserWishlist resolves the user's wishlist entries to their listings. The
// wishlists collection is the source of truth here; property.wishlistedBy is
// never consulted, so drift in that field does not affect this read. Entries
// whose listing has vanished are skipped.
func (e *Engine) UserWishlist(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	entries, err := e.wishlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(entries))
	for _, entry := range entries {
		property, err := e.properties.GetByID(ctx, entry.PropertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, nil
}

// ToggleWhitelist flips the mutual whitelist edge between the actor and the
// target. Membership is decided from the actor's list alone; the target is
// then updated to match and the actor is persisted before the target. A crash
// between the two persists leaves the edge recorded on one side only, which
// the next toggle by either party repairs, because each direction's check is
// authoritative for itself. Returns the actor's whitelist after the flip.
func (e *Engine) ToggleWhitelist(ctx context.Context, actorID, targetID primitive.ObjectID) ([]primitive.ObjectID, error) {
	actor, err := e.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := e.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	var actorList, targetList []primitive.ObjectID
	if actor.HasWhitelisted(target.ID) {
		actorList = removeID(actor.Whitelist, target.ID)
		targetList = removeID(target.Whitelist, actor.ID)
	} else {
		actorList = appendID(actor.Whitelist, target.ID)
		targetList = appendID(target.Whitelist, actor.ID)
	}

	if err := e.users.SetWhitelist(ctx, actor.ID, actorList); err != nil {
		return nil, err
	}
	if err := e.users.SetWhitelist(ctx, target.ID, targetList); err != nil {
		return actorList, &PartialWriteError{Op: "mirror whitelist to target", Err: err}
	}
	return actorList, nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func appendID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(append([]primitive.ObjectID{}, ids...), id)
}
