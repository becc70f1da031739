package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slabvault/slabvault/internal/client/cache"
	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/common"
	"github.com/slabvault/slabvault/internal/logging"
)

// SubmissionTransport is the slice of the API client the workflow needs.
type SubmissionTransport interface {
	Submissions(ctx context.Context) ([]models.Submission, error)
	CreateSubmission(ctx context.Context, form models.CachedForm) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, id string, form models.CachedForm) (*models.Submission, error)
}

// Workflow builds the user's current submission: add/edit/soft-delete cards,
// persist the batch, and hand off to review and payment.
//
// The working list always holds the FULL card list including soft-deleted
// rows, so every persist transmits them for server-side reconciliation;
// user-facing accessors expose only the visible subset. At most one unpaid
// submission exists per user at a time.
type Workflow struct {
	transport SubmissionTransport
	cache     *cache.Cache
	log       logging.Logger

	submissionID string
	tier         models.ServiceTier
	cards        []models.Card
}

func NewWorkflow(t SubmissionTransport, c *cache.Cache, log logging.Logger) *Workflow {
	return &Workflow{
		transport: t,
		cache:     c,
		log:       log.With("component", "submissions"),
		tier:      models.TierStandard,
	}
}

// fetchSubmissions resolves the user's submissions cache-first: a cache hit
// returns without touching the network, a miss fetches and fills the cache.
func (w *Workflow) fetchSubmissions(ctx context.Context, skipCache bool) ([]models.Submission, error) {
	if !skipCache {
		if cached := w.cache.Submissions(ctx); cached != nil {
			return cached, nil
		}
	}

	subs, err := w.transport.Submissions(ctx)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	w.cache.SetSubmissions(ctx, subs)
	return subs, nil
}

// firstUnpaid picks the first submission whose payment has not completed.
func firstUnpaid(subs []models.Submission) *models.Submission {
	for i := range subs {
		if !subs[i].Paid() {
			return &subs[i]
		}
	}
	return nil
}

// Load resolves the current unpaid submission: submissions list (cache
// first), then the first entry not yet paid, then the locally cached
// in-progress form when no such submission exists or the fetch fails.
func (w *Workflow) Load(ctx context.Context) error {
	subs, err := w.fetchSubmissions(ctx, false)
	if err == nil {
		if unpaid := firstUnpaid(subs); unpaid != nil {
			w.submissionID = string(unpaid.ID)
			if unpaid.ServiceTier != "" {
				w.tier = unpaid.ServiceTier
			}
			w.cards = cloneCards(unpaid.VisibleCards())
			return nil
		}
	} else {
		w.log.Warn(ctx, "submissions fetch failed, falling back to cached form", "err", err)
	}

	w.submissionID = ""
	w.cards = nil

	if form := w.cache.SubmissionForm(ctx); form != nil {
		if form.ServiceTier != "" {
			w.tier = form.ServiceTier
		}
		for _, c := range form.Cards {
			if c.Visible() {
				w.cards = append(w.cards, c)
			}
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("load submissions: %w", err)
	}
	return nil
}

// Cards returns the visible working list.
func (w *Workflow) Cards() []models.Card {
	out := make([]models.Card, 0, len(w.cards))
	for _, c := range w.cards {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}

// SubmissionID returns the server id of the working submission, or "" when
// nothing has been persisted yet.
func (w *Workflow) SubmissionID() string {
	return w.submissionID
}

// Tier returns the selected service tier.
func (w *Workflow) Tier() models.ServiceTier {
	return w.tier
}

// persist sends the FULL card list (soft-deleted rows included) to the
// server: create when no submission exists yet, else update by id. The
// submissions snapshot is invalidated so later reads refetch.
func (w *Workflow) persist(ctx context.Context, cards []models.Card, count int) (*models.Submission, error) {
	form := models.CachedForm{Cards: cards, CardCount: count, ServiceTier: w.tier}

	var (
		saved *models.Submission
		err   error
	)
	if w.submissionID != "" {
		saved, err = w.transport.UpdateSubmission(ctx, w.submissionID, form)
	} else {
		saved, err = w.transport.CreateSubmission(ctx, form)
	}
	if err != nil {
		return nil, err
	}
	w.cache.RemoveSubmissions(ctx)
	return saved, nil
}

// reconcile adopts the server's view of the submission after a persist,
// falling back to the locally computed list when the server does not echo
// the row, and refreshes the cached in-progress form.
func (w *Workflow) reconcile(ctx context.Context, saved *models.Submission, local []models.Card) {
	if saved != nil && saved.ID != "" {
		w.submissionID = string(saved.ID)
	}

	if saved != nil && saved.Cards != nil {
		w.cards = cloneCards(saved.VisibleCards())
	} else {
		w.cards = make([]models.Card, 0, len(local))
		for _, c := range local {
			if c.Visible() {
				w.cards = append(w.cards, c)
			}
		}
	}

	w.cache.SetSubmissionForm(ctx, models.CachedForm{
		Cards:       w.cards,
		CardCount:   len(w.cards),
		ServiceTier: w.tier,
	})
}

// AddCard validates and appends a card, then persists the whole batch.
// A price must be selected first; validation runs before any network call.
func (w *Workflow) AddCard(ctx context.Context, in models.CardInput, price float64) error {
	if price <= 0 {
		return common.ErrPriceRequired
	}
	if errs := models.ValidateCard(in); errs != nil {
		return errs
	}

	card := models.Card{
		ID:         models.FlexID(uuid.NewString()),
		Player:     in.Player,
		Year:       in.Year,
		Set:        in.Set,
		CardNumber: in.CardNumber,
		Notes:      in.Notes,
		Price:      price,
		Status:     models.CardStatusUnpaid,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	next := append(cloneCards(w.cards), card)
	saved, err := w.persist(ctx, next, len(next))
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	w.reconcile(ctx, saved, next)
	w.log.Info(ctx, "card added", "player", card.Player, "submission", w.submissionID)
	return nil
}

// UpdateCard replaces the fields of an existing card, preserving its id and
// creation time, and persists the batch.
func (w *Workflow) UpdateCard(ctx context.Context, id string, in models.CardInput, price float64) error {
	if price <= 0 {
		return common.ErrPriceRequired
	}
	if errs := models.ValidateCard(in); errs != nil {
		return errs
	}

	next := cloneCards(w.cards)
	idx := -1
	for i, c := range next {
		if string(c.ID) == id && c.Visible() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrCardNotFound
	}

	card := next[idx]
	card.Player = in.Player
	card.Year = in.Year
	card.Set = in.Set
	card.CardNumber = in.CardNumber
	card.Notes = in.Notes
	card.Price = price
	next[idx] = card

	saved, err := w.persist(ctx, next, len(next))
	if err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	w.reconcile(ctx, saved, next)
	return nil
}

// DeleteCard soft-deletes: the card stays in the transmitted payload with
// IsDeleted set so the server can reconcile, and disappears from the
// visible list. A failed persist restores the previous working list.
func (w *Workflow) DeleteCard(ctx context.Context, id string) error {
	snap := TakeSnapshot(cloneCards, w.cards)

	next := cloneCards(w.cards)
	found := false
	visible := 0
	for i := range next {
		if string(next[i].ID) == id && !next[i].IsDeleted {
			next[i].IsDeleted = true
			found = true
		}
		if next[i].Visible() {
			visible++
		}
	}
	if !found {
		return common.ErrCardNotFound
	}

	w.cards = next
	saved, err := w.persist(ctx, next, visible)
	if err != nil {
		w.cards = snap.Value()
		return fmt.Errorf("delete card: %w", err)
	}
	w.reconcile(ctx, saved, next)
	return nil
}

// Continue hands off to review. At least one visible card is required; when
// nothing has been persisted yet the submission is created on the fly.
func (w *Workflow) Continue(ctx context.Context) (string, error) {
	visible := w.Cards()
	if len(visible) == 0 {
		return "", common.ErrNoCards
	}

	if w.submissionID == "" {
		saved, err := w.persist(ctx, w.cards, len(visible))
		if err != nil {
			return "", fmt.Errorf("prepare submission: %w", err)
		}
		w.reconcile(ctx, saved, w.cards)
	}
	return w.submissionID, nil
}

// SaveAndExit caches the in-progress form so the next session resumes it.
func (w *Workflow) SaveAndExit(ctx context.Context) {
	visible := w.Cards()
	w.cache.SetSubmissionForm(ctx, models.CachedForm{
		Cards:       visible,
		CardCount:   len(visible),
		ServiceTier: w.tier,
	})
}
