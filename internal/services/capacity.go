package services

import "github.com/driano-gael/joticket/domain"

// RemainingCapacity derives the seats left for an event: total capacity
// minus every reserved offer's persons-per-unit weighted quantity. It is a
// snapshot for the presentation layer's pre-reserve check; the backend
// remains the authority at payment time.
func RemainingCapacity(event domain.Event, offers []domain.Offer, ledger domain.ReservationLedger) int {
	remaining := event.TotalCapacity
	for _, offer := range offers {
		if offer.EventID != event.ID {
			continue
		}
		remaining -= offer.PersonsPerUnit * ledger.Quantity(event.ID, offer.ID)
	}
	return remaining
}

// CanReserve reports whether one more unit of offer fits in the event's
// remaining capacity. Callers check this before invoking Reserve; the ledger
// itself never rejects.
func CanReserve(event domain.Event, offers []domain.Offer, offer domain.Offer, ledger domain.ReservationLedger) bool {
	return RemainingCapacity(event, offers, ledger) >= offer.PersonsPerUnit
}
