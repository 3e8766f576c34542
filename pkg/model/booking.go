package model

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// StatusPending is the default state for new bookings.
	StatusPending BookingStatus = "pending"

	// StatusConfirmed means the booking was accepted by the agency.
	StatusConfirmed BookingStatus = "confirmed"

	// StatusCancelled means the booking was cancelled.
	StatusCancelled BookingStatus = "cancelled"

	// StatusCompleted means the tour took place.
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Contact holds the customer contact fields of a booking.
type Contact struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// TourSnapshot is a point-in-time copy of the booked tour, not a live
// reference. Later changes to the tour do not affect existing bookings.
type TourSnapshot struct {
	TourID   string  `json:"tourId" validate:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Duration string  `json:"duration"`
}

// Traveler is one member of a booking's traveler list.
type Traveler struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
}

// Booking is a customer booking for a tour.
//
// Bookings are server-authoritative: the id is assigned by the remote
// backend, the collection is never persisted locally, and the in-memory
// list is re-derived from the remote list after every mutating call.
type Booking struct {
	ID     string `json:"id"`
	Source string `json:"source"`

	Contact Contact      `json:"contact"`
	Tour    TourSnapshot `json:"tour"`

	DepartureDate     string     `json:"departureDate"`
	ReturnDate        string     `json:"returnDate"`
	NumberOfTravelers int        `json:"numberOfTravelers" validate:"gte=1"`
	Travelers         []Traveler `json:"travelers"`

	SpecialRequests     string `json:"specialRequests"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	MedicalConditions   string `json:"medicalConditions"`

	Status    BookingStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

// BookingPatch is a partial-field update for a booking. Nil fields are
// left untouched by the merge.
type BookingPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`

	DepartureDate     *string     `json:"departureDate,omitempty"`
	ReturnDate        *string     `json:"returnDate,omitempty"`
	NumberOfTravelers *int        `json:"numberOfTravelers,omitempty" validate:"omitempty,gte=1"`
	Travelers         *[]Traveler `json:"travelers,omitempty"`

	SpecialRequests     *string `json:"specialRequests,omitempty"`
	DietaryRestrictions *string `json:"dietaryRestrictions,omitempty"`
	MedicalConditions   *string `json:"medicalConditions,omitempty"`

	Status *BookingStatus `json:"status,omitempty"`
}

// Apply shallow-merges the patch over b and returns the merged booking.
func (p BookingPatch) Apply(b Booking) Booking {
	if p.FirstName != nil {
		b.Contact.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		b.Contact.LastName = *p.LastName
	}
	if p.Email != nil {
		b.Contact.Email = *p.Email
	}
	if p.Phone != nil {
		b.Contact.Phone = *p.Phone
	}
	if p.Address != nil {
		b.Contact.Address = *p.Address
	}
	if p.DepartureDate != nil {
		b.DepartureDate = *p.DepartureDate
	}
	if p.ReturnDate != nil {
		b.ReturnDate = *p.ReturnDate
	}
	if p.NumberOfTravelers != nil {
		b.NumberOfTravelers = *p.NumberOfTravelers
	}
	if p.Travelers != nil {
		b.Travelers = *p.Travelers
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = *p.SpecialRequests
	}
	if p.DietaryRestrictions != nil {
		b.DietaryRestrictions = *p.DietaryRestrictions
	}
	if p.MedicalConditions != nil {
		b.MedicalConditions = *p.MedicalConditions
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	return b
}
