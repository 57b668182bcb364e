package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/pkg/logger"
)

var (
	organizer = auth.Identity{UserID: "organizer-1", Role: models.RoleOrganizer}
	rival     = auth.Identity{UserID: "organizer-2", Role: models.RoleOrganizer}
	admin     = auth.Identity{UserID: "admin-1", Role: models.RoleAdmin}
	buyer     = auth.Identity{UserID: "buyer-1", Role: models.RoleUser}
)

func newEventFixture(t *testing.T) (*memStore, EventService) {
	t.Helper()
	st := newMemStore()
	st.addUser("organizer-1", models.RoleOrganizer)
	st.addUser("organizer-2", models.RoleOrganizer)
	st.addUser("admin-1", models.RoleAdmin)
	return st, NewEventService(memEvents{st}, logger.NewNop())
}

func eventInput() EventInput {
	return EventInput{
		Title:          "  Jazz Night ",
		Category:       "music",
		City:           "Lisbon",
		Address:        "Rua Augusta 1",
		Date:           time.Date(2030, 6, 1, 21, 0, 0, 0, time.UTC),
		Price:          2500,
		AvailableSeats: 100,
	}
}

func TestEventService_Create(t *testing.T) {
	st, svc := newEventFixture(t)

	out, err := svc.Create(t.Context(), organizer, eventInput())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Jazz Night", out.Title)
	assert.Equal(t, "organizer-1", out.OrganizerID)
	assert.Equal(t, 100, out.RemainingSeats)
	assert.Equal(t, 0, st.events[out.ID].BookedSeats)

	_, err = svc.Create(t.Context(), buyer, eventInput())
	assert.ErrorIs(t, err, ErrForbidden)

	bad := eventInput()
	bad.Title = ""
	_, err = svc.Create(t.Context(), organizer, bad)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestEventService_ListFilters(t *testing.T) {
	_, svc := newEventFixture(t)

	_, err := svc.Create(t.Context(), organizer, eventInput())
	require.NoError(t, err)

	other := eventInput()
	other.Title = "Tech Summit"
	other.Category = "conference"
	other.City = "Porto"
	_, err = svc.Create(t.Context(), organizer, other)
	require.NoError(t, err)

	all, err := svc.List(t.Context(), models.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCity, err := svc.List(t.Context(), models.EventFilter{Location: "porto"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, "Tech Summit", byCity[0].Title)

	byName, err := svc.List(t.Context(), models.EventFilter{Name: "jazz", Category: "music"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Jazz Night", byName[0].Title)
}

func TestEventService_UpdateOwnership(t *testing.T) {
	_, svc := newEventFixture(t)

	created, err := svc.Create(t.Context(), organizer, eventInput())
	require.NoError(t, err)

	in := eventInput()
	in.Price = 3000

	_, err = svc.Update(t.Context(), rival, created.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(t.Context(), buyer, created.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := svc.Update(t.Context(), organizer, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.Cents(3000), out.Price)

	in.AvailableSeats = 150
	out, err = svc.Update(t.Context(), admin, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 150, out.AvailableSeats)

	_, err = svc.Update(t.Context(), admin, "missing", in)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_UpdateKeepsBookedSeats(t *testing.T) {
	st, svc := newEventFixture(t)
	st.addEvent("event-1", "organizer-1", 10, 6)

	in := eventInput()
	in.AvailableSeats = 5
	_, err := svc.Update(t.Context(), organizer, "event-1", in)
	assert.ErrorIs(t, err, ErrCapacityBelowBooked)

	in.AvailableSeats = 6
	out, err := svc.Update(t.Context(), organizer, "event-1", in)
	require.NoError(t, err)
	assert.Equal(t, 6, out.BookedSeats)
	assert.Equal(t, 0, out.RemainingSeats)
	assert.Equal(t, 6, st.events["event-1"].BookedSeats)
}

func TestEventService_Delete(t *testing.T) {
	st, svc := newEventFixture(t)
	st.addEvent("event-1", "organizer-1", 10, 0)
	st.addEvent("event-2", "organizer-1", 10, 1)
	st.payments["cs_1"] = models.Payment{TransactionID: "cs_1", EventID: "event-2"}

	assert.ErrorIs(t, svc.Delete(t.Context(), rival, "event-1"), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(t.Context(), organizer, "event-2"), ErrEventHasBookings)

	require.NoError(t, svc.Delete(t.Context(), organizer, "event-1"))
	assert.NotContains(t, st.events, "event-1")

	assert.ErrorIs(t, svc.Delete(t.Context(), organizer, "event-1"), ErrEventNotFound)
}

func TestInventoryService(t *testing.T) {
	st := newMemStore()
	st.addEvent("event-1", "organizer-1", 4, 3)
	inv := NewInventoryService(memEvents{st}, logger.NewNop())

	remaining, err := inv.Remaining(t.Context(), "event-1")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	e, err := inv.Increment(t.Context(), "event-1", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, e.BookedSeats)
	assert.True(t, e.IsOverbooked())

	remaining, err = inv.Remaining(t.Context(), "event-1")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = inv.Increment(t.Context(), "event-1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = inv.Increment(t.Context(), "missing", 1)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = inv.Remaining(t.Context(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBookingService_ListByEvent(t *testing.T) {
	st := newMemStore()
	st.addEvent("event-1", "organizer-1", 10, 3)
	st.bookings["cs_1"] = models.Booking{ID: "b1", TransactionID: "cs_1", EventID: "event-1", NumberOfSeats: 2}
	st.bookings["cs_2"] = models.Booking{ID: "b2", TransactionID: "cs_2", EventID: "event-2", NumberOfSeats: 1}
	svc := NewBookingService(memBookings{st}, memEvents{st}, logger.NewNop())

	out, err := svc.ListByEvent(t.Context(), organizer, "event-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)

	out, err = svc.ListByEvent(t.Context(), admin, "event-1")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	tests := []struct {
		name    string
		actor   auth.Identity
		eventID string
		wantErr error
	}{
		{"buyer", buyer, "event-1", ErrForbidden},
		{"other organizer", rival, "event-1", ErrForbidden},
		{"unknown event", organizer, "missing", ErrEventNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListByEvent(t.Context(), tt.actor, tt.eventID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEventService_ListByOrganizer(t *testing.T) {
	_, svc := newEventFixture(t)

	_, err := svc.Create(t.Context(), organizer, eventInput())
	require.NoError(t, err)
	_, err = svc.Create(t.Context(), rival, eventInput())
	require.NoError(t, err)

	mine, err := svc.List(t.Context(), models.EventFilter{OrganizerID: "organizer-1"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "organizer-1", mine[0].OrganizerID)

	none, err := svc.List(t.Context(), models.EventFilter{OrganizerID: "admin-1"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
