package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusAvailable        = "available"
	StatusRented           = "rented"
	StatusSold             = "sold"
	StatusUnderMaintenance = "under maintenance"
)

// Property is a listing document. AgentName, AgentContact and AgentImage are
// snapshotted from the owner at creation time, not joined on read.
// WishlistedBy holds Wishlist entry ids; it is a read optimization maintained
// by the relations engine and is never the source of truth for wishlist
// membership.
type Property struct {
	ID                  primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID              primitive.ObjectID   `json:"userId" bson:"userId"`
	PropertyName        string               `json:"propertyName" bson:"propertyName"`
	PropertyType        string               `json:"propertyType" bson:"propertyType"`
	PropertyDescription string               `json:"propertyDescription" bson:"propertyDescription"`
	LeaseType           string               `json:"leaseType" bson:"leaseType"`
	LeaseDuration       string               `json:"leaseDuration" bson:"leaseDuration"`
	PropertyPrice       float64              `json:"propertyPrice" bson:"propertyPrice"`
	PropertyLocation    string               `json:"propertyLocation" bson:"propertyLocation"`
	AgentName           string               `json:"agentName" bson:"agentName"`
	AgentContact        string               `json:"agentContact" bson:"agentContact"`
	AgentImage          string               `json:"agentImage" bson:"agentImage"`
	PropertyImages      []string             `json:"propertyImages" bson:"propertyImages"`
	PropertyStatus      string               `json:"propertyStatus" bson:"propertyStatus"`
	WishlistedBy        []primitive.ObjectID `json:"wishlistedBy" bson:"wishlistedBy"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}
