package wire

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/atlas-tours/travel-client/pkg/model"
)

// Tour is the flat snake_case wire form of a tour. List-valued fields
// travel as native JSON arrays; only the booking traveler list carries the
// string-encoding quirk.
type Tour struct {
	ID          String  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       Float   `json:"price"`
	Duration    string  `json:"duration"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
	Category    string  `json:"category"`
	Rating      Float   `json:"rating"`
	ReviewCount Int     `json:"review_count"`

	Highlights  []string       `json:"highlights"`
	Included    []string       `json:"included"`
	Itinerary   []ItineraryDay `json:"itinerary"`
	WhatToBring []string       `json:"what_to_bring"`

	MaxGroupSize Int      `json:"max_group_size"`
	Languages    []string `json:"languages"`
}

// ItineraryDay is the wire form of one itinerary day.
type ItineraryDay struct {
	Day        Int    `json:"day"`
	Activities string `json:"activities"`
}

// TourToWire converts a client tour to its wire form.
func TourToWire(t model.Tour) Tour {
	days := make([]ItineraryDay, 0, len(t.Itinerary))
	for _, d := range t.Itinerary {
		days = append(days, ItineraryDay{Day: Int(d.Day), Activities: d.Activities})
	}
	return Tour{
		ID:           String(t.ID),
		Name:         t.Name,
		Description:  t.Description,
		Price:        Float(t.Price),
		Duration:     t.Duration,
		Location:     t.Location,
		Image:        t.Image,
		Featured:     t.Featured,
		Category:     t.Category,
		Rating:       Float(t.Rating),
		ReviewCount:  Int(t.ReviewCount),
		Highlights:   t.Highlights,
		Included:     t.Included,
		Itinerary:    days,
		WhatToBring:  t.WhatToBring,
		MaxGroupSize: Int(t.MaxGroupSize),
		Languages:    t.Languages,
	}
}

// TourFromWire converts a wire record to the client form. Malformed
// numerics degrade to zero; absent strings stay empty.
func TourFromWire(w Tour) model.Tour {
	days := make([]model.ItineraryDay, 0, len(w.Itinerary))
	for _, d := range w.Itinerary {
		days = append(days, model.ItineraryDay{Day: int(d.Day), Activities: d.Activities})
	}
	return model.Tour{
		ID:           string(w.ID),
		Name:         w.Name,
		Description:  w.Description,
		Price:        float64(w.Price),
		Duration:     w.Duration,
		Location:     w.Location,
		Image:        w.Image,
		Featured:     w.Featured,
		Category:     w.Category,
		Rating:       float64(w.Rating),
		ReviewCount:  int(w.ReviewCount),
		Highlights:   w.Highlights,
		Included:     w.Included,
		Itinerary:    days,
		WhatToBring:  w.WhatToBring,
		MaxGroupSize: int(w.MaxGroupSize),
		Languages:    w.Languages,
	}
}

// Values flattens the wire tour into form parameters for the primary
// mutation transport. List-valued fields are JSON-encoded since form
// encoding has no native array representation the backend accepts.
func (w Tour) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "id", string(w.ID))
	v.Set("name", w.Name)
	setNonEmpty(v, "description", w.Description)
	v.Set("price", strconv.FormatFloat(float64(w.Price), 'f', -1, 64))
	setNonEmpty(v, "duration", w.Duration)
	setNonEmpty(v, "location", w.Location)
	setNonEmpty(v, "image", w.Image)
	v.Set("featured", strconv.FormatBool(w.Featured))
	setNonEmpty(v, "category", w.Category)
	v.Set("rating", strconv.FormatFloat(float64(w.Rating), 'f', -1, 64))
	v.Set("review_count", strconv.Itoa(int(w.ReviewCount)))
	setJSON(v, "highlights", w.Highlights)
	setJSON(v, "included", w.Included)
	setJSON(v, "itinerary", w.Itinerary)
	setJSON(v, "what_to_bring", w.WhatToBring)
	v.Set("max_group_size", strconv.Itoa(int(w.MaxGroupSize)))
	setJSON(v, "languages", w.Languages)
	return v
}

func setJSON(v url.Values, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	v.Set(key, string(data))
}
