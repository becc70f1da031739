package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slabvault/slabvault/internal/client/models"
)

type fakeDashboardTransport struct {
	vault      []models.Submission
	vaultErr   error
	paid       []models.Submission
	paidErr    error
	metrics    *models.Metrics
	metricsErr error
}

func (f *fakeDashboardTransport) VaultSubmissions(context.Context) ([]models.Submission, error) {
	return f.vault, f.vaultErr
}

func (f *fakeDashboardTransport) PaidSubmissions(context.Context) ([]models.Submission, error) {
	return f.paid, f.paidErr
}

func (f *fakeDashboardTransport) Metrics(context.Context) (*models.Metrics, error) {
	return f.metrics, f.metricsErr
}

func TestOverview_AllSectionsLoaded(t *testing.T) {
	tr := &fakeDashboardTransport{
		vault:   []models.Submission{{ID: "v1"}},
		paid:    []models.Submission{{ID: "p1"}},
		metrics: &models.Metrics{},
	}
	d := NewDashboard(tr, testLogger())

	o, err := d.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, o.Vault, 1)
	require.Len(t, o.Paid, 1)
	require.NotNil(t, o.Metrics)
}

func TestOverview_VaultFailureFailsLoad(t *testing.T) {
	tr := &fakeDashboardTransport{vaultErr: errors.New("boom")}
	d := NewDashboard(tr, testLogger())

	_, err := d.Overview(context.Background())
	require.Error(t, err)
}

func TestOverview_SecondarySectionsDegrade(t *testing.T) {
	tr := &fakeDashboardTransport{
		vault:      []models.Submission{{ID: "v1"}},
		paidErr:    errors.New("boom"),
		metricsErr: errors.New("boom"),
	}
	d := NewDashboard(tr, testLogger())

	o, err := d.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, o.Vault, 1)
	require.Empty(t, o.Paid)
	require.Nil(t, o.Metrics)
}
