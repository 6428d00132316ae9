package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/driano-gael/joticket/domain"
)

type reservationKey struct {
	EventID int64
	OfferID int64
}

// LedgerImpl implements domain.ReservationLedger: an in-memory quantity map
// persisted to the key-value store after every mutation. Persistence
// failures are swallowed so a full store never breaks a cart interaction;
// the in-memory state stays authoritative for the running process.
type LedgerImpl struct {
	mu         sync.Mutex
	entries    map[reservationKey]int
	store      domain.KeyValueStore
	storageKey string
	log        zerolog.Logger
}

// NewReservationLedger creates an empty ledger persisting under storageKey
func NewReservationLedger(store domain.KeyValueStore, storageKey string, log zerolog.Logger) domain.ReservationLedger {
	return &LedgerImpl{
		entries:    make(map[reservationKey]int),
		store:      store,
		storageKey: storageKey,
		log:        log,
	}
}

// Reserve implements domain.ReservationLedger. The increment is
// unconditional: capacity checks belong to the caller, the ledger never
// rejects.
func (l *LedgerImpl) Reserve(ctx context.Context, eventID, offerID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[reservationKey{eventID, offerID}]++
	l.persistLocked(ctx)
}

// Unreserve implements domain.ReservationLedger. Decrementing the last unit
// deletes the entry; a zero-quantity record never exists. Unreserving an
// absent pair is a no-op.
func (l *LedgerImpl) Unreserve(ctx context.Context, eventID, offerID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := reservationKey{eventID, offerID}
	quantity, ok := l.entries[key]
	if !ok {
		return
	}

	if quantity > 1 {
		l.entries[key] = quantity - 1
	} else {
		delete(l.entries, key)
	}
	l.persistLocked(ctx)
}

// Clear implements domain.ReservationLedger
func (l *LedgerImpl) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[reservationKey]int)
	l.persistLocked(ctx)
}

// Quantity implements domain.ReservationLedger
func (l *LedgerImpl) Quantity(eventID, offerID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[reservationKey{eventID, offerID}]
}

// Items implements domain.ReservationLedger, sorted for deterministic output
func (l *LedgerImpl) Items() []domain.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.itemsLocked()
}

// Restore implements domain.ReservationLedger. A missing or unreadable
// serialized cart leaves the current state untouched.
func (l *LedgerImpl) Restore(ctx context.Context) {
	raw, err := l.store.Get(ctx, l.storageKey)
	if err != nil {
		if err != domain.ErrKeyNotFound {
			l.log.Debug().Err(err).Msg("cart restore skipped")
		}
		return
	}

	var items []domain.Reservation
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		l.log.Debug().Err(err).Msg("stored cart unreadable, ignoring")
		return
	}

	entries := make(map[reservationKey]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		entries[reservationKey{item.EventID, item.OfferID}] = item.Quantity
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

func (l *LedgerImpl) itemsLocked() []domain.Reservation {
	items := make([]domain.Reservation, 0, len(l.entries))
	for key, quantity := range l.entries {
		items = append(items, domain.Reservation{
			EventID:  key.EventID,
			OfferID:  key.OfferID,
			Quantity: quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].EventID != items[j].EventID {
			return items[i].EventID < items[j].EventID
		}
		return items[i].OfferID < items[j].OfferID
	})
	return items
}

func (l *LedgerImpl) persistLocked(ctx context.Context) {
	data, err := json.Marshal(l.itemsLocked())
	if err != nil {
		l.log.Debug().Err(err).Msg("cart serialization failed, persist skipped")
		return
	}
	if err := l.store.Set(ctx, l.storageKey, string(data)); err != nil {
		l.log.Debug().Err(err).Msg("cart persist skipped")
	}
}
