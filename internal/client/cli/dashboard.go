package cli

import (
	"context"
	"fmt"
)

// Dashboard prints the vault overview: submissions, paid history and metrics.
func (a *App) Dashboard(ctx context.Context) error {
	o, err := a.dashboard.Overview(ctx)
	if err != nil {
		fmt.Println("Could not load the dashboard:", err)
		return err
	}

	fmt.Printf("Vault: %d submission(s)\n", len(o.Vault))
	for _, s := range o.Vault {
		fmt.Printf("  [%s] %s / %s — %d card(s), %s, created %s\n",
			s.ID, s.SubmissionStatus, s.PaymentStatus, s.CardCount,
			formatMoney(s.Amount), formatDate(s.CreatedAt))
	}

	if len(o.Paid) > 0 {
		fmt.Printf("Paid: %d submission(s)\n", len(o.Paid))
		for _, s := range o.Paid {
			fmt.Printf("  [%s] %d card(s), %s\n", s.ID, s.CardCount, formatMoney(s.Amount))
		}
	}

	if m := o.Metrics; m != nil {
		fmt.Printf("Totals: %d submissions, %d cards, %d in grading, %d completed, %s spent\n",
			m.TotalSubmissions, m.TotalCards, m.InGradingCount, m.CompletedCount, formatMoney(m.TotalSpent))
	}
	return nil
}
