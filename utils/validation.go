package utils

import (
	"fmt"

	"github.com/Rejoice2374/Homely-API/models"
)

var propertyTypes = map[string]bool{
	"Duplex":   true,
	"Studio":   true,
	"Condo":    true,
	"Office":   true,
	"Shortlet": true,
	"Land":     true,
}

var leaseTypes = map[string]bool{
	"short-term rental": true,
	"long-term rental":  true,
	"lease":             true,
	"sale":              true,
}

var leaseDurations = map[string]bool{
	"daily":     true,
	"weekly":    true,
	"monthly":   true,
	"yearly":    true,
	"permanent": true,
}

var propertyStatuses = map[string]bool{
	models.StatusAvailable:        true,
	models.StatusRented:           true,
	models.StatusSold:             true,
	models.StatusUnderMaintenance: true,
}

// ValidateProperty checks the listing fields against the schema rules.
func ValidateProperty(p models.Property) error {
	if l := len(p.PropertyName); l < 2 || l > 50 {
		return fmt.Errorf("propertyName must be between 2 and 50 characters")
	}
	if !propertyTypes[p.PropertyType] {
		return fmt.Errorf("invalid propertyType %q", p.PropertyType)
	}
	if l := len(p.PropertyDescription); l < 10 || l > 500 {
		return fmt.Errorf("propertyDescription must be between 10 and 500 characters")
	}
	if !leaseTypes[p.LeaseType] {
		return fmt.Errorf("invalid leaseType %q", p.LeaseType)
	}
	if !leaseDurations[p.LeaseDuration] {
		return fmt.Errorf("invalid leaseDuration %q", p.LeaseDuration)
	}
	if p.PropertyPrice < 0 {
		return fmt.Errorf("propertyPrice must not be negative")
	}
	if l := len(p.PropertyLocation); l < 2 || l > 100 {
		return fmt.Errorf("propertyLocation must be between 2 and 100 characters")
	}
	if p.PropertyStatus != "" && !propertyStatuses[p.PropertyStatus] {
		return fmt.Errorf("invalid propertyStatus %q", p.PropertyStatus)
	}
	return nil
}
