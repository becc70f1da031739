package services

import (
	"context"
	"fmt"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/logging"
)

// DashboardTransport is the slice of the API client the dashboard needs.
type DashboardTransport interface {
	VaultSubmissions(ctx context.Context) ([]models.Submission, error)
	PaidSubmissions(ctx context.Context) ([]models.Submission, error)
	Metrics(ctx context.Context) (*models.Metrics, error)
}

// Overview is the dashboard data set: the user's vault, their paid
// submissions, and the precomputed metrics. Paid and Metrics are optional;
// their fetches fail independently of the vault.
type Overview struct {
	Vault   []models.Submission
	Paid    []models.Submission
	Metrics *models.Metrics
}

// Dashboard assembles the user's vault view.
type Dashboard struct {
	transport DashboardTransport
	log       logging.Logger
}

func NewDashboard(t DashboardTransport, log logging.Logger) *Dashboard {
	return &Dashboard{transport: t, log: log.With("component", "dashboard")}
}

// Overview fetches the three data sets sequentially. The vault is the
// primary view and its failure fails the whole load; the paid list and the
// metrics degrade to empty/nil on error, matching their independent error
// handling in the page this replaces.
func (d *Dashboard) Overview(ctx context.Context) (*Overview, error) {
	vault, err := d.transport.VaultSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vault: %w", err)
	}

	out := &Overview{Vault: vault}

	if paid, err := d.transport.PaidSubmissions(ctx); err != nil {
		d.log.Warn(ctx, "paid submissions fetch failed", "err", err)
	} else {
		out.Paid = paid
	}

	if metrics, err := d.transport.Metrics(ctx); err != nil {
		d.log.Warn(ctx, "metrics fetch failed", "err", err)
	} else {
		out.Metrics = metrics
	}

	return out, nil
}
