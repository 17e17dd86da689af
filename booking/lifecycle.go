package booking

import "time"

// Reservation statuses. CANCELLED and CONVERTED are terminal and never block
// new bookings.
const (
	ReservationPending   = "PENDING"
	ReservationApproved  = "APPROVED"
	ReservationCancelled = "CANCELLED"
	ReservationConverted = "CONVERTED"
)

// Loan statuses. OVERDUE is derived from ACTIVE, never entered by a user
// action; RETURNED is terminal.
const (
	LoanActive   = "ACTIVE"
	LoanOverdue  = "OVERDUE"
	LoanReturned = "RETURNED"
)

var reservationTransitions = map[string]map[string]bool{
	ReservationPending: {
		ReservationApproved:  true,
		ReservationCancelled: true,
	},
	ReservationApproved: {
		ReservationConverted: true,
		ReservationCancelled: true,
	},
}

// CanTransitionReservation reports whether from → to is a legal reservation
// transition. Anything not listed (including no-op "transitions" to the same
// status) is illegal and must fail with ErrStateConflict.
func CanTransitionReservation(from, to string) bool {
	return reservationTransitions[from][to]
}

// ReservationBlocks reports whether a reservation in the given status counts
// against an item's availability.
func ReservationBlocks(status string) bool {
	return status == ReservationPending || status == ReservationApproved
}

// EffectiveLoanStatus derives the status a read path must report. A stored
// ACTIVE past its due date is OVERDUE even before the sweep persists it;
// anything with a return timestamp is RETURNED regardless of the stored
// column.
func EffectiveLoanStatus(stored string, dueAt time.Time, returnedAt *time.Time, now time.Time) string {
	if returnedAt != nil || stored == LoanReturned {
		return LoanReturned
	}
	if now.After(dueAt) {
		return LoanOverdue
	}
	return stored
}

// LoanOpen reports whether the loan still holds the item out, i.e. blocks
// the item's timeline. Stored OVERDUE is an open loan.
func LoanOpen(returnedAt *time.Time) bool {
	return returnedAt == nil
}
