package wire

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/model"
)

func testLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf)
}

func sampleBooking() model.Booking {
	return model.Booking{
		ID:     "b-42",
		Source: "web",
		Contact: model.Contact{
			FirstName: "Ana",
			LastName:  "Diaz",
			Email:     "ana@example.com",
			Phone:     "+34 600 000 000",
			Address:   "Calle Mayor 1, Madrid",
		},
		Tour: model.TourSnapshot{
			TourID:   "tour-andes-trek",
			Name:     "Andes Highland Trek",
			Price:    1890,
			Location: "Cusco, Peru",
			Duration: "8 days",
		},
		DepartureDate:     "2026-09-14",
		ReturnDate:        "2026-09-22",
		NumberOfTravelers: 2,
		Travelers: []model.Traveler{
			{FirstName: "Ana", LastName: "Diaz", DateOfBirth: "1988-02-11", Nationality: "ES"},
			{FirstName: "Luis", LastName: "Diaz", DateOfBirth: "1990-07-30", Nationality: "ES"},
		},
		SpecialRequests:     "window seats",
		DietaryRestrictions: "vegetarian",
		Status:              model.StatusConfirmed,
		CreatedAt:           "2026-08-01T10:00:00Z",
		UpdatedAt:           "2026-08-02T09:30:00Z",
	}
}

func TestBookingRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := sampleBooking()

	got := BookingFromWire(BookingToWire(original), testLogger(&buf))

	if !reflect.DeepEqual(got, original) {
		t.Errorf("round trip changed the booking:\n got: %+v\nwant: %+v", got, original)
	}
	if buf.Len() != 0 {
		t.Errorf("round trip logged unexpectedly: %s", buf.String())
	}
}

func TestBookingRoundTripPreservesTravelerOrder(t *testing.T) {
	var buf bytes.Buffer
	original := sampleBooking()

	got := BookingFromWire(BookingToWire(original), testLogger(&buf))

	for i, tr := range got.Travelers {
		if tr.FirstName != original.Travelers[i].FirstName {
			t.Errorf("traveler %d = %q, want %q", i, tr.FirstName, original.Travelers[i].FirstName)
		}
	}
}

func TestDecodeTravelers(t *testing.T) {
	tests := []struct {
		name      string
		encoded   string
		want      int
		wantsWarn bool
	}{
		{"empty_string", "", 0, false},
		{"empty_list", "[]", 0, false},
		{"one_traveler", `[{"first_name":"Ana","last_name":"Diaz"}]`, 1, false},
		{"malformed_json", `{not json`, 0, true},
		{"wrong_shape", `{"first_name":"Ana"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := DecodeTravelers(tt.encoded, testLogger(&buf))

			if got == nil {
				t.Fatal("DecodeTravelers returned nil, want empty list")
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if tt.wantsWarn && !strings.Contains(buf.String(), "Malformed traveler payload") {
				t.Errorf("expected a malformed-payload warning, got %q", buf.String())
			}
			if !tt.wantsWarn && buf.Len() != 0 {
				t.Errorf("unexpected log output: %s", buf.String())
			}
		})
	}
}

func TestBookingFromWireDefaults(t *testing.T) {
	var buf bytes.Buffer
	got := BookingFromWire(Booking{
		ID:                "b-1",
		Email:             "ana@example.com",
		NumberOfTravelers: 0,
		Status:            "shipped", // not a booking status
		Travelers:         "{broken",
	}, testLogger(&buf))

	if got.NumberOfTravelers != 1 {
		t.Errorf("NumberOfTravelers = %d, want 1", got.NumberOfTravelers)
	}
	if got.Status != model.StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, model.StatusPending)
	}
	if len(got.Travelers) != 0 {
		t.Errorf("Travelers = %v, want empty", got.Travelers)
	}
}

func TestBookingFromWireLooseNumerics(t *testing.T) {
	var w Booking
	raw := `{
		"id": 42,
		"email": "ana@example.com",
		"tour_id": "tour-1",
		"tour_price": "1890.5",
		"number_of_travelers": "3",
		"travelers": "[]",
		"status": "pending"
	}`
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	var buf bytes.Buffer
	got := BookingFromWire(w, testLogger(&buf))

	if got.ID != "42" {
		t.Errorf("ID = %q, want %q", got.ID, "42")
	}
	if got.Tour.Price != 1890.5 {
		t.Errorf("Tour.Price = %v, want 1890.5", got.Tour.Price)
	}
	if got.NumberOfTravelers != 3 {
		t.Errorf("NumberOfTravelers = %d, want 3", got.NumberOfTravelers)
	}
}

func TestBookingValues(t *testing.T) {
	v := BookingToWire(sampleBooking()).Values()

	if got := v.Get("first_name"); got != "Ana" {
		t.Errorf("first_name = %q, want %q", got, "Ana")
	}
	if got := v.Get("tour_id"); got != "tour-andes-trek" {
		t.Errorf("tour_id = %q, want %q", got, "tour-andes-trek")
	}
	if got := v.Get("number_of_travelers"); got != "2" {
		t.Errorf("number_of_travelers = %q, want %q", got, "2")
	}

	// The traveler list travels as one JSON-encoded string parameter.
	var travelers []wireTraveler
	if err := json.Unmarshal([]byte(v.Get("travelers")), &travelers); err != nil {
		t.Fatalf("travelers parameter is not valid JSON: %v", err)
	}
	if len(travelers) != 2 || travelers[1].FirstName != "Luis" {
		t.Errorf("travelers = %+v, want 2 entries ending with Luis", travelers)
	}

	// Optional empty fields stay off the wire.
	if _, ok := v["medical_conditions"]; ok {
		t.Error("empty medical_conditions should not be encoded")
	}
}
