package model

// SeedTours returns the fixed default tour collection used to populate the
// local cache when durable storage is empty or unparseable.
//
// The slice is freshly allocated on every call so callers can mutate it.
func SeedTours() []Tour {
	return []Tour{
		{
			ID:          "tour-andes-trek",
			Name:        "Andes Highland Trek",
			Description: "Seven days across the high passes of the Cordillera Blanca with local guides.",
			Price:       1490,
			Duration:    "7 days",
			Location:    "Huaraz, Peru",
			Image:       "/images/tours/andes-trek.jpg",
			Featured:    true,
			Category:    "Adventure",
			Rating:      4.8,
			ReviewCount: 124,
			Highlights: []string{
				"Laguna 69 sunrise hike",
				"Punta Union pass at 4,750m",
				"Homestay in Vaqueria",
			},
			Included: []string{
				"All meals on trek",
				"Mountain guide and porters",
				"Camping equipment",
			},
			Itinerary: []ItineraryDay{
				{Day: 1, Activities: "Arrival in Huaraz, acclimatization walk"},
				{Day: 2, Activities: "Drive to Vaqueria, first camp"},
				{Day: 3, Activities: "Cross Punta Union pass"},
				{Day: 4, Activities: "Descend the Santa Cruz valley"},
			},
			WhatToBring:  []string{"Layered clothing", "Broken-in boots", "Sun protection"},
			MaxGroupSize: 10,
			Languages:    []string{"English", "Spanish"},
		},
		{
			ID:          "tour-kyoto-food",
			Name:        "Kyoto Food Walk",
			Description: "Evening walking tour through Nishiki market and Pontocho alley.",
			Price:       180,
			Duration:    "4 hours",
			Location:    "Kyoto, Japan",
			Image:       "/images/tours/kyoto-food.jpg",
			Featured:    true,
			Category:    "Food",
			Rating:      4.9,
			ReviewCount: 310,
			Highlights: []string{
				"Nishiki market tasting",
				"Standing bar hopping",
				"Tea ceremony finale",
			},
			Included:     []string{"All tastings", "Local guide"},
			Itinerary:    []ItineraryDay{{Day: 1, Activities: "Market walk, izakaya dinner, tea house"}},
			WhatToBring:  []string{"Comfortable shoes"},
			MaxGroupSize: 8,
			Languages:    []string{"English", "Japanese"},
		},
		{
			ID:          "tour-dalmatia-sail",
			Name:        "Dalmatian Coast Sailing",
			Description: "Island hopping from Split to Dubrovnik on a crewed yacht.",
			Price:       2150,
			Duration:    "8 days",
			Location:    "Split, Croatia",
			Image:       "/images/tours/dalmatia-sail.jpg",
			Featured:    false,
			Category:    "Beach",
			Rating:      4.6,
			ReviewCount: 87,
			Highlights: []string{
				"Blue cave on Bisevo",
				"Old town Hvar by night",
				"Swimming stops every day",
			},
			Included: []string{"Skipper and crew", "Breakfast and lunch", "Marina fees"},
			Itinerary: []ItineraryDay{
				{Day: 1, Activities: "Board in Split, sail to Brac"},
				{Day: 2, Activities: "Hvar town and Pakleni islands"},
				{Day: 3, Activities: "Vis and the blue cave"},
			},
			WhatToBring:  []string{"Soft-soled shoes", "Windbreaker", "Swimwear"},
			MaxGroupSize: 12,
			Languages:    []string{"English", "Croatian", "German"},
		},
	}
}
