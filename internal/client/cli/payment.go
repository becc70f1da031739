package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/client/services"
	"github.com/slabvault/slabvault/internal/common"
)

// Tiers prints the per-card price breakdown for every service tier.
func (a *App) Tiers(ctx context.Context) error {
	quotes := a.payment.Quotes(ctx)

	for _, tier := range []models.ServiceTier{models.TierStandard, models.TierBigMoney, models.TierSpeedDemon} {
		q := quotes[tier]
		fmt.Printf("%-14s base %s + fee %s = %s per card\n",
			tier, formatMoney(q.BasePrice), formatMoney(q.ProcessingFee), formatMoney(q.Total))
	}
	return nil
}

// Pay resolves the unpaid submission, shows the amount due and executes the
// chosen payment mode.
func (a *App) Pay(ctx context.Context) error {
	sub, err := a.payment.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoUnpaidCards) {
			fmt.Println("Nothing to pay.")
			return nil
		}
		fmt.Println("Could not load your submission:", err)
		return err
	}

	fmt.Printf("%d card(s), %s tier\n", sub.CardCount, sub.ServiceTier)
	for _, c := range sub.Cards {
		fmt.Printf("  %s %s #%s  %s\n", c.Player, c.Year, c.CardNumber, formatMoney(c.Price))
	}
	fmt.Printf("Total due: %s\n", formatMoney(services.Total(sub)))

	choice, err := getSimpleText(a.reader, "Pay (n)ow or (l)ater?", os.Stdout)
	if err != nil {
		return err
	}
	var mode services.PaymentMode
	switch choice {
	case "n", "now":
		mode = services.PayNow
	case "l", "later":
		mode = services.PayLater
	default:
		fmt.Println("Cancelled.")
		return nil
	}

	methodID, err := getSimpleText(a.reader, "Payment method id (from your wallet)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.payment.Pay(ctx, sub, mode, methodID)
	if err != nil {
		fmt.Println("Payment failed:", err)
		return err
	}

	if mode == services.PayLater {
		fmt.Printf("Submission %s confirmed. You will be charged after grading.\n", id)
	} else {
		fmt.Printf("Submission %s paid. Your cards are on their way!\n", id)
	}

	// Best effort: show the server's view of the submission.
	if saved, err := a.payment.Confirmation(ctx, id); err == nil {
		fmt.Printf("Status: %s, payment %s\n", saved.SubmissionStatus, saved.PaymentStatus)
	}
	return nil
}
