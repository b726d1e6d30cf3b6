package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"salonbook/models"
)

// fakeCatalogRepo serves catalog reads from in-memory slices.
type fakeCatalogRepo struct {
	services     []models.Service
	stylists     []models.Stylist
	workstations []models.Workstation
}

func (f *fakeCatalogRepo) GetServicesByIDs(_ context.Context, salonID string, serviceIDs []string) ([]models.Service, error) {
	requested := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		requested[id] = true
	}
	var out []models.Service
	for _, s := range f.services {
		if s.SalonID == salonID && requested[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetStylistByID(_ context.Context, stylistID string) (*models.Stylist, error) {
	for i := range f.stylists {
		if f.stylists[i].ID == stylistID {
			st := f.stylists[i]
			return &st, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) GetStylistsForServices(_ context.Context, salonID string, serviceIDs []string) ([]models.Stylist, error) {
	var out []models.Stylist
	for _, st := range f.stylists {
		if st.SalonID != salonID {
			continue
		}
		can := make(map[string]bool, len(st.ServiceIDs))
		for _, id := range st.ServiceIDs {
			can[id] = true
		}
		all := true
		for _, id := range serviceIDs {
			if !can[id] {
				all = false
				break
			}
		}
		if all {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetWorkstationsBySalon(_ context.Context, salonID string) ([]models.Workstation, error) {
	var out []models.Workstation
	for _, ws := range f.workstations {
		if ws.SalonID == salonID {
			out = append(out, ws)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// fakeBookingRepo keeps bookings and service lines in memory. The err* fields
// inject failures into individual operations.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	lines    map[string][]models.BookingServiceLine

	errInsertLines error
	errDelete      error
	deletedIDs     []string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]models.Booking),
		lines:    make(map[string][]models.BookingServiceLine),
	}
}

func (f *fakeBookingRepo) InsertBooking(_ context.Context, booking *models.Booking) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = *booking
	return booking.ID, nil
}

func (f *fakeBookingRepo) InsertServiceLines(_ context.Context, lines []models.BookingServiceLine) error {
	if f.errInsertLines != nil {
		return f.errInsertLines
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, line := range lines {
		f.lines[line.BookingID] = append(f.lines[line.BookingID], line)
	}
	return nil
}

func (f *fakeBookingRepo) DeleteBooking(_ context.Context, bookingID string) error {
	if f.errDelete != nil {
		return f.errDelete
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, bookingID)
	f.deletedIDs = append(f.deletedIDs, bookingID)
	return nil
}

func (f *fakeBookingRepo) DeleteServiceLines(_ context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lines, bookingID)
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (f *fakeBookingRepo) GetServiceLines(_ context.Context, bookingID string) ([]models.BookingServiceLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lines[bookingID], nil
}

func (f *fakeBookingRepo) CountOverlapping(_ context.Context, workstationID string, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, b := range f.bookings {
		if b.WorkstationID != workstationID || b.Status == models.StatusCancelled {
			continue
		}
		if Overlaps(b.Start, b.End, start, end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) ConditionalUpdate(_ context.Context, bookingID string, expectedStatuses []string, expectedStart time.Time, set map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[bookingID]
	if !ok {
		return false, nil
	}
	statusOK := false
	for _, status := range expectedStatuses {
		if booking.Status == status {
			statusOK = true
			break
		}
	}
	if !statusOK {
		return false, nil
	}
	if !expectedStart.IsZero() && !booking.Start.Equal(expectedStart) {
		return false, nil
	}
	for field, value := range set {
		switch field {
		case "status":
			booking.Status = value.(string)
		case "start":
			booking.Start = value.(time.Time)
		case "end":
			booking.End = value.(time.Time)
		case "notes":
			booking.Notes = value.(string)
		case "stylist_id":
			booking.StylistID = value.(string)
		case "updated_at":
			booking.UpdatedAt = value.(time.Time)
		}
	}
	f.bookings[bookingID] = booking
	return true, nil
}

func (f *fakeBookingRepo) ListOngoing(_ context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && !models.IsTerminalStatus(b.Status) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeBookingRepo) ListHistory(_ context.Context, userID string, offset, limit int64) ([]models.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && models.IsTerminalStatus(b.Status) {
			all = append(all, b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Start.After(all[j].Start) })
	total := int64(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// fakeNotifier records which bookings were notified and can fail on demand.
type fakeNotifier struct {
	err  error
	sent chan string
}

func (f *fakeNotifier) SendBookingNotification(_ context.Context, _, bookingID, _, _ string) error {
	f.sent <- bookingID
	return f.err
}

// fakeLocker grants every acquisition unless the workstation id is marked held.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
	released []string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]bool)}
}

func (f *fakeLocker) Acquire(_ context.Context, workstationID string) (func(), bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[workstationID] {
		return nil, false, nil
	}
	f.acquired = append(f.acquired, workstationID)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.released = append(f.released, workstationID)
	}, true, nil
}
