package wire

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/model"
)

// Booking is the flat snake_case wire form of a booking.
//
// The traveler list is a single JSON-encoded string among otherwise flat
// key/value pairs. That is the backend's interface contract, not a local
// design choice, and is preserved exactly.
type Booking struct {
	ID     String `json:"id"`
	Source string `json:"source"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`

	TourID       String `json:"tour_id"`
	TourName     string `json:"tour_name"`
	TourPrice    Float  `json:"tour_price"`
	TourLocation string `json:"tour_location"`
	TourDuration string `json:"tour_duration"`

	DepartureDate     string `json:"departure_date"`
	ReturnDate        string `json:"return_date"`
	NumberOfTravelers Int    `json:"number_of_travelers"`
	Travelers         string `json:"travelers"`

	SpecialRequests     string `json:"special_requests"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	MedicalConditions   string `json:"medical_conditions"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// wireTraveler is the snake_case element of the encoded traveler string.
type wireTraveler struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Nationality string `json:"nationality"`
}

// EncodeTravelers serializes a traveler list into its single-string wire
// form. A nil or empty list encodes as "[]".
func EncodeTravelers(travelers []model.Traveler) string {
	out := make([]wireTraveler, 0, len(travelers))
	for _, t := range travelers {
		out = append(out, wireTraveler{
			FirstName:   t.FirstName,
			LastName:    t.LastName,
			DateOfBirth: t.DateOfBirth,
			Nationality: t.Nationality,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		// Marshal of plain string structs cannot fail.
		return "[]"
	}
	return string(data)
}

// DecodeTravelers parses the single-string traveler field. Decode failure
// substitutes an empty list and logs a warning; it never fails the
// surrounding read.
func DecodeTravelers(encoded string, logger zerolog.Logger) []model.Traveler {
	if encoded == "" {
		return []model.Traveler{}
	}
	var raw []wireTraveler
	if err := json.Unmarshal([]byte(encoded), &raw); err != nil {
		logger.Warn().
			Err(err).
			Str("travelers", truncate(encoded, 80)).
			Msg("Malformed traveler payload, substituting empty list")
		return []model.Traveler{}
	}
	out := make([]model.Traveler, 0, len(raw))
	for _, t := range raw {
		out = append(out, model.Traveler{
			FirstName:   t.FirstName,
			LastName:    t.LastName,
			DateOfBirth: t.DateOfBirth,
			Nationality: t.Nationality,
		})
	}
	return out
}

// BookingToWire converts a client booking to its wire form, renaming to
// the flat snake_case convention and re-encoding the traveler list.
func BookingToWire(b model.Booking) Booking {
	return Booking{
		ID:     String(b.ID),
		Source: b.Source,

		FirstName: b.Contact.FirstName,
		LastName:  b.Contact.LastName,
		Email:     b.Contact.Email,
		Phone:     b.Contact.Phone,
		Address:   b.Contact.Address,

		TourID:       String(b.Tour.TourID),
		TourName:     b.Tour.Name,
		TourPrice:    Float(b.Tour.Price),
		TourLocation: b.Tour.Location,
		TourDuration: b.Tour.Duration,

		DepartureDate:     b.DepartureDate,
		ReturnDate:        b.ReturnDate,
		NumberOfTravelers: Int(b.NumberOfTravelers),
		Travelers:         EncodeTravelers(b.Travelers),

		SpecialRequests:     b.SpecialRequests,
		DietaryRestrictions: b.DietaryRestrictions,
		MedicalConditions:   b.MedicalConditions,

		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookingFromWire converts a wire record to the client form. Absent or
// malformed fields degrade to safe defaults: numerics to zero, the
// traveler count to 1, the status to pending, the traveler list to empty.
func BookingFromWire(w Booking, logger zerolog.Logger) model.Booking {
	count := int(w.NumberOfTravelers)
	if count < 1 {
		count = 1
	}

	status := model.BookingStatus(w.Status)
	if !status.Valid() {
		status = model.StatusPending
	}

	return model.Booking{
		ID:     string(w.ID),
		Source: w.Source,

		Contact: model.Contact{
			FirstName: w.FirstName,
			LastName:  w.LastName,
			Email:     w.Email,
			Phone:     w.Phone,
			Address:   w.Address,
		},
		Tour: model.TourSnapshot{
			TourID:   string(w.TourID),
			Name:     w.TourName,
			Price:    float64(w.TourPrice),
			Location: w.TourLocation,
			Duration: w.TourDuration,
		},

		DepartureDate:     w.DepartureDate,
		ReturnDate:        w.ReturnDate,
		NumberOfTravelers: count,
		Travelers:         DecodeTravelers(w.Travelers, logger),

		SpecialRequests:     w.SpecialRequests,
		DietaryRestrictions: w.DietaryRestrictions,
		MedicalConditions:   w.MedicalConditions,

		Status:    status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// Values flattens the wire booking into form parameters for the primary
// mutation transport.
func (w Booking) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "id", string(w.ID))
	setNonEmpty(v, "source", w.Source)
	v.Set("first_name", w.FirstName)
	v.Set("last_name", w.LastName)
	v.Set("email", w.Email)
	setNonEmpty(v, "phone", w.Phone)
	setNonEmpty(v, "address", w.Address)
	v.Set("tour_id", string(w.TourID))
	setNonEmpty(v, "tour_name", w.TourName)
	v.Set("tour_price", strconv.FormatFloat(float64(w.TourPrice), 'f', -1, 64))
	setNonEmpty(v, "tour_location", w.TourLocation)
	setNonEmpty(v, "tour_duration", w.TourDuration)
	setNonEmpty(v, "departure_date", w.DepartureDate)
	setNonEmpty(v, "return_date", w.ReturnDate)
	v.Set("number_of_travelers", strconv.Itoa(int(w.NumberOfTravelers)))
	v.Set("travelers", w.Travelers)
	setNonEmpty(v, "special_requests", w.SpecialRequests)
	setNonEmpty(v, "dietary_restrictions", w.DietaryRestrictions)
	setNonEmpty(v, "medical_conditions", w.MedicalConditions)
	setNonEmpty(v, "status", w.Status)
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
