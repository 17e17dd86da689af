package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"asset_booking/booking"
)

func Test_CanTransitionReservation(t *testing.T) {
	legal := []struct{ from, to string }{
		{booking.ReservationPending, booking.ReservationApproved},
		{booking.ReservationPending, booking.ReservationCancelled},
		{booking.ReservationApproved, booking.ReservationConverted},
		{booking.ReservationApproved, booking.ReservationCancelled},
	}
	for _, tc := range legal {
		assert.True(t, booking.CanTransitionReservation(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	illegal := []struct{ from, to string }{
		{booking.ReservationPending, booking.ReservationConverted},
		{booking.ReservationCancelled, booking.ReservationApproved},
		{booking.ReservationCancelled, booking.ReservationCancelled},
		{booking.ReservationConverted, booking.ReservationApproved},
		{booking.ReservationConverted, booking.ReservationCancelled},
		{booking.ReservationApproved, booking.ReservationApproved},
		{booking.ReservationApproved, booking.ReservationPending},
		{booking.ReservationPending, booking.ReservationPending},
		{"", booking.ReservationApproved},
	}
	for _, tc := range illegal {
		assert.False(t, booking.CanTransitionReservation(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func Test_ReservationBlocks(t *testing.T) {
	assert.True(t, booking.ReservationBlocks(booking.ReservationPending))
	assert.True(t, booking.ReservationBlocks(booking.ReservationApproved))
	assert.False(t, booking.ReservationBlocks(booking.ReservationCancelled))
	assert.False(t, booking.ReservationBlocks(booking.ReservationConverted))
}

func Test_EffectiveLoanStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	returned := now.Add(-30 * time.Minute)

	tests := []struct {
		name       string
		stored     string
		dueAt      time.Time
		returnedAt *time.Time
		want       string
	}{
		{"active_before_due", booking.LoanActive, future, nil, booking.LoanActive},
		{"active_past_due_reads_overdue", booking.LoanActive, past, nil, booking.LoanOverdue},
		{"stored_overdue_stays_overdue", booking.LoanOverdue, past, nil, booking.LoanOverdue},
		{"returned_wins_over_due_date", booking.LoanActive, past, &returned, booking.LoanReturned},
		{"stored_returned", booking.LoanReturned, past, nil, booking.LoanReturned},
		{"due_exactly_now_still_active", booking.LoanActive, now, nil, booking.LoanActive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := booking.EffectiveLoanStatus(tc.stored, tc.dueAt, tc.returnedAt, now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_LoanOpen(t *testing.T) {
	now := time.Now()
	assert.True(t, booking.LoanOpen(nil))
	assert.False(t, booking.LoanOpen(&now))
}
