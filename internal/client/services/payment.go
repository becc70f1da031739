package services

import (
	"context"
	"fmt"

	"github.com/slabvault/slabvault/internal/client/api"
	"github.com/slabvault/slabvault/internal/client/cache"
	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/common"
	"github.com/slabvault/slabvault/internal/logging"
)

// PaymentTransport is the slice of the API client the payment step needs.
type PaymentTransport interface {
	Submissions(ctx context.Context) ([]models.Submission, error)
	SubmissionByID(ctx context.Context, id string) (*models.Submission, error)
	CreateSubmission(ctx context.Context, form models.CachedForm) (*models.Submission, error)
	PayNow(ctx context.Context, submissionID, paymentMethodID string) (*api.PaymentResult, error)
	ConfirmPayment(ctx context.Context, submissionID, paymentIntentID string) error
	PayLater(ctx context.Context, submissionID string) (*api.PaymentResult, error)
	ConfirmPaymentMethod(ctx context.Context, submissionID, setupIntentID, paymentMethodID string) error
}

// PaymentMode selects between charging immediately and deferring the charge.
type PaymentMode string

const (
	PayNow   PaymentMode = "pay_now"
	PayLater PaymentMode = "pay_later"
)

// Payment drives the payment step of the submission workflow. Pricing and
// charging are server concerns; this only sequences the calls and keeps the
// cache honest.
type Payment struct {
	transport PaymentTransport
	cache     *cache.Cache
	log       logging.Logger
}

func NewPayment(t PaymentTransport, c *cache.Cache, log logging.Logger) *Payment {
	return &Payment{transport: t, cache: c, log: log.With("component", "payment")}
}

// Load resolves the submission being paid for. The fetch always skips the
// cache so the amounts are current; the cached in-progress form is the
// fallback when no server-side unpaid submission exists. Returns
// common.ErrNoUnpaidCards when there is nothing left to pay.
func (p *Payment) Load(ctx context.Context) (*models.Submission, error) {
	subs, err := p.transport.Submissions(ctx)
	if err == nil {
		p.cache.SetSubmissions(ctx, subs)
		if unpaid := firstUnpaid(subs); unpaid != nil {
			visible := unpaid.VisibleCards()
			if len(visible) == 0 {
				return nil, common.ErrNoUnpaidCards
			}
			sub := *unpaid
			sub.Cards = visible
			sub.CardCount = len(visible)
			return &sub, nil
		}
	} else {
		p.log.Warn(ctx, "submissions fetch failed, trying cached form", "err", err)
	}

	form := p.cache.SubmissionForm(ctx)
	if form == nil {
		if err != nil {
			return nil, fmt.Errorf("load unpaid submission: %w", err)
		}
		return nil, common.ErrNoUnpaidCards
	}

	visible := make([]models.Card, 0, len(form.Cards))
	for _, c := range form.Cards {
		if c.Visible() {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return nil, common.ErrNoUnpaidCards
	}

	return &models.Submission{
		Cards:         visible,
		CardCount:     len(visible),
		ServiceTier:   form.ServiceTier,
		PaymentStatus: models.PaymentStatusUnpaid,
	}, nil
}

// Total sums the prices of the unpaid, non-deleted cards.
func Total(sub *models.Submission) float64 {
	if sub == nil {
		return 0
	}
	var sum float64
	for _, c := range sub.Cards {
		if c.Visible() {
			sum += c.Price
		}
	}
	return sum
}

// Pay executes the chosen payment mode and returns the submission id for
// the confirmation step. A submission that only exists locally is created
// first. On success the cached form and the submissions snapshot are both
// cleared, forcing a refetch.
func (p *Payment) Pay(ctx context.Context, sub *models.Submission, mode PaymentMode, paymentMethodID string) (string, error) {
	if sub == nil {
		return "", common.ErrNoUnpaidCards
	}
	if sub.Paid() {
		return "", common.ErrSubmissionPaid
	}

	unpaid := sub.VisibleCards()
	if len(unpaid) == 0 {
		return "", common.ErrNoUnpaidCards
	}

	id := string(sub.ID)
	if id == "" {
		created, err := p.transport.CreateSubmission(ctx, models.CachedForm{
			Cards:       unpaid,
			CardCount:   len(unpaid),
			ServiceTier: sub.ServiceTier,
		})
		if err != nil {
			return "", fmt.Errorf("create submission: %w", err)
		}
		if created == nil || created.ID == "" {
			return "", fmt.Errorf("create submission: server returned no id")
		}
		id = string(created.ID)
	}

	switch mode {
	case PayNow:
		res, err := p.transport.PayNow(ctx, id, paymentMethodID)
		if err != nil {
			return "", fmt.Errorf("pay now: %w", err)
		}
		if res != nil && res.PaymentIntentID != "" {
			if err := p.transport.ConfirmPayment(ctx, id, res.PaymentIntentID); err != nil {
				return "", fmt.Errorf("confirm payment: %w", err)
			}
		}
	case PayLater:
		res, err := p.transport.PayLater(ctx, id)
		if err != nil {
			return "", fmt.Errorf("pay later: %w", err)
		}
		if res != nil && res.SetupIntentID != "" && paymentMethodID != "" {
			if err := p.transport.ConfirmPaymentMethod(ctx, id, res.SetupIntentID, paymentMethodID); err != nil {
				return "", fmt.Errorf("confirm payment method: %w", err)
			}
		}
	default:
		return "", fmt.Errorf("unknown payment mode %q", mode)
	}

	p.cache.RemoveSubmissionForm(ctx)
	p.cache.RemoveSubmissions(ctx)
	p.log.Info(ctx, "payment submitted", "submission", id, "mode", mode)
	return id, nil
}

// Confirmation fetches the submission fresh from the server for the
// post-payment summary.
func (p *Payment) Confirmation(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := p.transport.SubmissionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load confirmation: %w", err)
	}
	return sub, nil
}

// Quotes returns the per-card price breakdown for every tier, cached under
// the pricing_tiers namespace.
func (p *Payment) Quotes(ctx context.Context) map[models.ServiceTier]models.PricingQuote {
	if cached := p.cache.PricingTiers(ctx); cached != nil {
		return cached
	}

	tiers := map[models.ServiceTier]models.PricingQuote{
		models.TierSpeedDemon: models.Quote(models.TierSpeedDemon),
		models.TierStandard:   models.Quote(models.TierStandard),
		models.TierBigMoney:   models.Quote(models.TierBigMoney),
	}
	p.cache.SetPricingTiers(ctx, tiers)
	return tiers
}
