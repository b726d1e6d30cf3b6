package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusInProgress, true},
		{models.StatusPending, models.StatusCompleted, true},
		{models.StatusPending, models.StatusNoShow, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusPending, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, true},
		{models.StatusConfirmed, models.StatusInProgress, false},
		{models.StatusInProgress, models.StatusCompleted, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusNoShow, models.StatusConfirmed, false},
		{models.StatusPending, "archived", false},
	}

	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func lifecycleService(repo bookingRepo.BookingRepository) *DefaultBookingService {
	return &DefaultBookingService{Catalog: testCatalog(), Bookings: repo, Locks: newFakeLocker()}
}

func seedOwnedBooking(repo *fakeBookingRepo, status string, start time.Time) {
	repo.bookings["b-1"] = models.Booking{
		ID:      "b-1",
		UserID:  "user-1",
		SalonID: "salon-1",
		Status:  status,
		Start:   start,
		End:     start.Add(time.Hour),
	}
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels ahead of the window", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusConfirmed, time.Now().Add(3*time.Hour))
		svc := lifecycleService(repo)

		booking, err := svc.CancelBooking(ctx, "user-1", "b-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Status != models.StatusCancelled {
			t.Errorf("status = %s, want %s", booking.Status, models.StatusCancelled)
		}
		if repo.bookings["b-1"].Status != models.StatusCancelled {
			t.Error("cancellation not persisted")
		}
	})

	t.Run("rejected inside the window", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.CancelBooking(ctx, "user-1", "b-1")
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
		if repo.bookings["b-1"].Status != models.StatusPending {
			t.Error("guarded booking must not change")
		}
	})

	t.Run("rejected for in-progress booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusInProgress, time.Now().Add(5*time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.CancelBooking(ctx, "user-1", "b-1")
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := lifecycleService(newFakeBookingRepo())
		_, err := svc.CancelBooking(ctx, "user-1", "nope")
		if CodeOf(err) != CodeBookingNotFound {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeBookingNotFound)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(5*time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.CancelBooking(ctx, "user-2", "b-1")
		if KindOf(err) != KindAuthorization {
			t.Errorf("kind = %s, want %s", KindOf(err), KindAuthorization)
		}
	})

	t.Run("notifier failure does not undo the cancellation", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusConfirmed, time.Now().Add(3*time.Hour))
		notifier := &fakeNotifier{err: errors.New("push gateway down"), sent: make(chan string, 1)}
		svc := lifecycleService(repo)
		svc.Notifier = notifier

		booking, err := svc.CancelBooking(ctx, "user-1", "b-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Status != models.StatusCancelled {
			t.Errorf("status = %s, want %s", booking.Status, models.StatusCancelled)
		}
		select {
		case bookingID := <-notifier.sent:
			if bookingID != "b-1" {
				t.Errorf("notified booking = %s, want b-1", bookingID)
			}
		case <-time.After(2 * time.Second):
			t.Error("notifier was never invoked")
		}
	})

	t.Run("concurrent transition loses the write", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(5*time.Hour))
		svc := lifecycleService(&racingRepo{fakeBookingRepo: repo})

		_, err := svc.CancelBooking(ctx, "user-1", "b-1")
		if CodeOf(err) != CodeConcurrentUpdate {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeConcurrentUpdate)
		}
	})
}

// racingRepo flips the booking into in-progress between the read and the
// conditional write, like an admin transition landing first.
type racingRepo struct {
	*fakeBookingRepo
}

func (r *racingRepo) ConditionalUpdate(ctx context.Context, bookingID string, expectedStatuses []string, expectedStart time.Time, set map[string]any) (bool, error) {
	r.mu.Lock()
	booking := r.bookings[bookingID]
	booking.Status = models.StatusInProgress
	r.bookings[bookingID] = booking
	r.mu.Unlock()
	return r.fakeBookingRepo.ConditionalUpdate(ctx, bookingID, expectedStatuses, expectedStart, set)
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the interval and resets to pending", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusConfirmed, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		newStart := time.Now().Add(26 * time.Hour).UTC().Truncate(time.Minute)
		newEnd := newStart.Add(time.Hour)
		booking, err := svc.RescheduleBooking(ctx, "user-1", "b-1", newStart, newEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Status != models.StatusPending {
			t.Errorf("status = %s, want %s", booking.Status, models.StatusPending)
		}
		if !booking.Start.Equal(newStart) || !booking.End.Equal(newEnd) {
			t.Errorf("interval = [%v, %v), want [%v, %v)", booking.Start, booking.End, newStart, newEnd)
		}
		persisted := repo.bookings["b-1"]
		if persisted.Status != models.StatusPending || !persisted.Start.Equal(newStart) {
			t.Error("reschedule not persisted")
		}
	})

	t.Run("rejected inside the window", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(3*time.Hour))
		svc := lifecycleService(repo)

		newStart := time.Now().Add(26 * time.Hour)
		_, err := svc.RescheduleBooking(ctx, "user-1", "b-1", newStart, newStart.Add(time.Hour))
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
	})

	t.Run("new start in the past", func(t *testing.T) {
		svc := lifecycleService(newFakeBookingRepo())
		past := time.Now().Add(-time.Hour)
		_, err := svc.RescheduleBooking(ctx, "user-1", "b-1", past, past.Add(time.Hour))
		if CodeOf(err) != CodeInvalidInput {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeInvalidInput)
		}
	})

	t.Run("new end not after new start", func(t *testing.T) {
		svc := lifecycleService(newFakeBookingRepo())
		newStart := time.Now().Add(26 * time.Hour)
		_, err := svc.RescheduleBooking(ctx, "user-1", "b-1", newStart, newStart)
		if CodeOf(err) != CodeInvalidInput {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeInvalidInput)
		}
	})

	t.Run("terminal booking cannot move", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusCompleted, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		newStart := time.Now().Add(26 * time.Hour)
		_, err := svc.RescheduleBooking(ctx, "user-1", "b-1", newStart, newStart.Add(time.Hour))
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
	})
}

func TestUpdateBookingDetails(t *testing.T) {
	ctx := context.Background()
	notes := "please use unscented products"
	stylist := "sty-b"
	foreignStylist := "sty-c"

	t.Run("edits notes and stylist on a pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		booking, err := svc.UpdateBookingDetails(ctx, "user-1", "b-1", models.UpdateBookingInput{Notes: &notes, StylistID: &stylist})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Notes != notes {
			t.Errorf("notes = %q, want %q", booking.Notes, notes)
		}
		if booking.StylistID != stylist {
			t.Errorf("stylist = %s, want %s", booking.StylistID, stylist)
		}
	})

	t.Run("rejected for a confirmed booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusConfirmed, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.UpdateBookingDetails(ctx, "user-1", "b-1", models.UpdateBookingInput{Notes: &notes})
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
	})

	t.Run("stylist from another salon", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.UpdateBookingDetails(ctx, "user-1", "b-1", models.UpdateBookingInput{StylistID: &foreignStylist})
		if KindOf(err) != KindNotFound {
			t.Errorf("kind = %s, want %s", KindOf(err), KindNotFound)
		}
	})
}

func TestTransitionStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(time.Hour))
		svc := lifecycleService(repo)

		booking, err := svc.TransitionStatus(ctx, "b-1", models.StatusConfirmed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if booking.Status != models.StatusConfirmed {
			t.Errorf("status = %s, want %s", booking.Status, models.StatusConfirmed)
		}
	})

	t.Run("no time guard applies", func(t *testing.T) {
		repo := newFakeBookingRepo()
		// Started ten minutes ago; the salon marks it in progress.
		seedOwnedBooking(repo, models.StatusPending, time.Now().Add(-10*time.Minute))
		svc := lifecycleService(repo)

		if _, err := svc.TransitionStatus(ctx, "b-1", models.StatusInProgress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("terminal status never leaves", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusCancelled, time.Now().Add(6*time.Hour))
		svc := lifecycleService(repo)

		_, err := svc.TransitionStatus(ctx, "b-1", models.StatusConfirmed)
		if CodeOf(err) != CodeLifecycleGuard {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeLifecycleGuard)
		}
	})

	t.Run("pending is never an admin target", func(t *testing.T) {
		repo := newFakeBookingRepo()
		seedOwnedBooking(repo, models.StatusConfirmed, time.Now().Add(30*time.Minute))
		svc := lifecycleService(repo)

		_, err := svc.TransitionStatus(ctx, "b-1", models.StatusPending)
		if CodeOf(err) != CodeInvalidInput {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeInvalidInput)
		}
		if repo.bookings["b-1"].Status != models.StatusConfirmed {
			t.Error("confirmed booking must keep its status")
		}
	})

	t.Run("unknown target status", func(t *testing.T) {
		svc := lifecycleService(newFakeBookingRepo())
		_, err := svc.TransitionStatus(ctx, "b-1", "archived")
		if CodeOf(err) != CodeInvalidInput {
			t.Errorf("code = %s, want %s", CodeOf(err), CodeInvalidInput)
		}
	})
}
