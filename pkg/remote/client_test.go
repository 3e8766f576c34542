package remote

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/atlas-tours/travel-client/internal/testutil"
	"github.com/atlas-tours/travel-client/pkg/model"
)

func newTestClient(t *testing.T, backend *testutil.MockBackend) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: backend.URL()})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() with empty base URL should fail")
	}
}

func TestListTours(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare_list", `[{"id":"t-1","name":"A","price":100},{"id":"t-2","name":"B","price":200}]`, 2},
		{"data_envelope", `{"data":[{"id":"t-1","name":"A","price":100}]}`, 1},
		{"empty", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewMockBackend()
			defer backend.Close()
			backend.SetList("tours", tt.body)

			c := newTestClient(t, backend)
			tours, err := c.ListTours(context.Background())
			if err != nil {
				t.Fatalf("ListTours returned error: %v", err)
			}
			if len(tours) != tt.want {
				t.Errorf("len(tours) = %d, want %d", len(tours), tt.want)
			}
		})
	}
}

func TestListToursMalformedEnvelope(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.SetList("tours", `{"items":[]}`)

	c := newTestClient(t, backend)
	_, err := c.ListTours(context.Background())

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("ListTours error = %v, want MalformedResponseError", err)
	}
	if malformed.Resource != "tours" {
		t.Errorf("Resource = %q, want %q", malformed.Resource, "tours")
	}
}

func TestListToursServerError(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.FailLists(true)

	c := newTestClient(t, backend)
	_, err := c.ListTours(context.Background())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("ListTours error = %v, want TransportError", err)
	}
	if transport.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", transport.StatusCode)
	}
}

func TestListBookingsToleratesLooseRecords(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.SetList("bookings", `[{
		"id": 9,
		"email": "ana@example.com",
		"tour_id": "tour-1",
		"tour_price": "1890",
		"travelers": "{broken",
		"status": "confirmed"
	}]`)

	c := newTestClient(t, backend)
	bookings, err := c.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("ListBookings returned error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("len(bookings) = %d, want 1", len(bookings))
	}
	b := bookings[0]
	if b.ID != "9" {
		t.Errorf("ID = %q, want %q", b.ID, "9")
	}
	if b.Tour.Price != 1890 {
		t.Errorf("Tour.Price = %v, want 1890", b.Tour.Price)
	}
	if len(b.Travelers) != 0 {
		t.Errorf("Travelers = %v, want empty for malformed payload", b.Travelers)
	}
	if b.NumberOfTravelers != 1 {
		t.Errorf("NumberOfTravelers = %d, want default 1", b.NumberOfTravelers)
	}
}

func TestListCategories(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.SetList("categories", `{"success":true,"categories":[{"name":"Adventure"},{"name":"Beach"}]}`)

	c := newTestClient(t, backend)
	names, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(names) != 2 || names[0] != "Adventure" || names[1] != "Beach" {
		t.Errorf("names = %v, want [Adventure Beach]", names)
	}
}

func TestCreateTourUsesPrimaryTransport(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()

	c := newTestClient(t, backend)
	err := c.CreateTour(context.Background(), model.Tour{Name: "New Tour", Price: 100})
	if err != nil {
		t.Fatalf("CreateTour returned error: %v", err)
	}

	if got := backend.FormMutations(); got != 1 {
		t.Errorf("form mutations = %d, want 1", got)
	}
	if got := backend.JSONMutations(); got != 0 {
		t.Errorf("JSON mutations = %d, want 0 when the primary succeeds", got)
	}

	form := backend.LastForm()
	if got := form.Get("action"); got != "create" {
		t.Errorf("action = %q, want %q", got, "create")
	}
	if got := form.Get("name"); got != "New Tour" {
		t.Errorf("name = %q, want %q", got, "New Tour")
	}
}

func TestMutateFallsBackToJSON(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.FailPrimary(true)

	c := newTestClient(t, backend)
	err := c.CreateTour(context.Background(), model.Tour{Name: "New Tour", Price: 100})
	if err != nil {
		t.Fatalf("CreateTour returned error: %v", err)
	}

	if got := backend.FormMutations(); got != 1 {
		t.Errorf("form mutations = %d, want 1 (primary always attempted first)", got)
	}
	if got := backend.JSONMutations(); got != 1 {
		t.Errorf("JSON mutations = %d, want 1", got)
	}
}

func TestMutateBothTransportsFail(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.FailPrimary(true)
	backend.FailFallback(true)

	c := newTestClient(t, backend)
	err := c.DeleteTour(context.Background(), "t-1")

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("DeleteTour error = %v, want TransportError", err)
	}
	if backend.MutationAttempts() != 2 {
		t.Errorf("mutation attempts = %d, want 2 (one per transport)", backend.MutationAttempts())
	}
}

func TestMutateRejectedAck(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.SetHandler("/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte("[]"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": false, "message": "departure date in the past"}`))
	})
	backend.SetHandler("/bookings/b-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": false, "message": "departure date in the past"}`))
	})

	c := newTestClient(t, backend)
	err := c.DeleteBooking(context.Background(), "b-1")

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("DeleteBooking error = %v, want TransportError", err)
	}
	if transport.Message != "departure date in the past" {
		t.Errorf("Message = %q, want the ack message", transport.Message)
	}
}

func TestMutateUnparseableAck(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()
	backend.SetHandler("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := newTestClient(t, backend)
	err := c.CreateCategory(context.Background(), "Safari")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("CreateCategory error = %v, want MalformedResponseError", err)
	}
}

func TestDeleteCategoryParams(t *testing.T) {
	backend := testutil.NewMockBackend()
	defer backend.Close()

	c := newTestClient(t, backend)
	if err := c.DeleteCategory(context.Background(), "Beach"); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}

	form := backend.LastForm()
	if got := form.Get("action"); got != "delete" {
		t.Errorf("action = %q, want %q", got, "delete")
	}
	if got := form.Get("name"); got != "Beach" {
		t.Errorf("name = %q, want %q", got, "Beach")
	}
}
