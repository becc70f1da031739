package services

import "github.com/slabvault/slabvault/internal/client/models"

// Snapshot captures local state just before an optimistic mutation, so a
// failed write can restore the last known-good value. The lifecycle is
// take -> apply -> commit or restore; last writer wins, no locking.
type Snapshot[T any] struct {
	value T
}

// TakeSnapshot deep-copies v with clone and holds it.
func TakeSnapshot[T any](clone func(T) T, v T) Snapshot[T] {
	return Snapshot[T]{value: clone(v)}
}

// Value returns the captured state.
func (s Snapshot[T]) Value() T {
	return s.value
}

func cloneCards(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	return out
}

func cloneSubmissions(subs []models.Submission) []models.Submission {
	out := make([]models.Submission, len(subs))
	for i, s := range subs {
		s.Cards = cloneCards(s.Cards)
		if s.User != nil {
			u := *s.User
			s.User = &u
		}
		out[i] = s
	}
	return out
}
