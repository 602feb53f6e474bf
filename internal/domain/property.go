package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertyPending  PropertyStatus = "pending"
)

type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyRoom      PropertyType = "room"
	PropertyVilla     PropertyType = "villa"
)

type Property struct {
	ID            string
	HostID        string
	Title         string
	Description   *string
	PropertyType  PropertyType
	PricePerNight decimal.Decimal
	Latitude      float64
	Longitude     float64
	Address       string
	City          string
	Country       string
	Guests        int
	Bedrooms      int
	Beds          int
	Bathrooms     float64
	Amenities     []string
	Images        []string
	Rules         *string
	Status        PropertyStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PropertyView is the read model returned to browsers: the property plus
// host info and review aggregates.
type PropertyView struct {
	Property
	HostName     string
	HostAvatar   *string
	HostVerified bool
	AvgRating    float64
	ReviewCount  int
	DistanceKm   *float64
}

type PropertySearch struct {
	Latitude     float64
	Longitude    float64
	RadiusKm     float64
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Guests       *int
	PropertyType *PropertyType
	Limit        int
}
