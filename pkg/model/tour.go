// Package model defines the client-side resource types managed by the
// travel client: tours, bookings and categories.
//
// Types follow the client field convention (nested structs, camelCase JSON
// tags). The flat snake_case wire representation lives in pkg/wire.
package model

// ItineraryDay describes one day of a tour itinerary.
type ItineraryDay struct {
	Day        int    `json:"day"`
	Activities string `json:"activities"`
}

// Tour is a bookable tour offering.
//
// Tours are owned by the local cache store: the id is assigned locally at
// creation time and the collection is persisted to durable storage on every
// accepted mutation.
type Tour struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Duration    string  `json:"duration"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`

	// Category references a category by name. There is no numeric
	// category key anywhere in the protocol.
	Category string `json:"category"`

	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"reviewCount"`
	Highlights  []string       `json:"highlights"`
	Included    []string       `json:"included"`
	Itinerary   []ItineraryDay `json:"itinerary"`
	WhatToBring []string       `json:"whatToBring"`

	MaxGroupSize int      `json:"maxGroupSize"`
	Languages    []string `json:"languages"`
}

// TourPatch is a partial-field update for a tour. Nil fields are left
// untouched by the merge.
type TourPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration    *string  `json:"duration,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Category    *string  `json:"category,omitempty"`

	Rating      *float64        `json:"rating,omitempty"`
	ReviewCount *int            `json:"reviewCount,omitempty"`
	Highlights  *[]string       `json:"highlights,omitempty"`
	Included    *[]string       `json:"included,omitempty"`
	Itinerary   *[]ItineraryDay `json:"itinerary,omitempty"`
	WhatToBring *[]string       `json:"whatToBring,omitempty"`

	MaxGroupSize *int      `json:"maxGroupSize,omitempty"`
	Languages    *[]string `json:"languages,omitempty"`
}

// Apply shallow-merges the patch over t and returns the merged tour.
// The receiver is not modified.
func (p TourPatch) Apply(t Tour) Tour {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Featured != nil {
		t.Featured = *p.Featured
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		t.ReviewCount = *p.ReviewCount
	}
	if p.Highlights != nil {
		t.Highlights = *p.Highlights
	}
	if p.Included != nil {
		t.Included = *p.Included
	}
	if p.Itinerary != nil {
		t.Itinerary = *p.Itinerary
	}
	if p.WhatToBring != nil {
		t.WhatToBring = *p.WhatToBring
	}
	if p.MaxGroupSize != nil {
		t.MaxGroupSize = *p.MaxGroupSize
	}
	if p.Languages != nil {
		t.Languages = *p.Languages
	}
	return t
}
