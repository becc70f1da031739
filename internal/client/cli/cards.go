package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/common"
)

var getAmount = GetAmount

// ListCards reloads the working submission and prints its visible cards.
func (a *App) ListCards(ctx context.Context) error {
	if err := a.workflow.Load(ctx); err != nil {
		fmt.Println("Could not load your submission:", err)
		return err
	}

	cards := a.workflow.Cards()
	if len(cards) == 0 {
		fmt.Println("No cards yet. Use 'add' to start a submission.")
		return nil
	}

	fmt.Printf("Service tier: %s (%s per card)\n", a.workflow.Tier(), formatMoney(models.TierPrice(a.workflow.Tier())))
	for i, c := range cards {
		fmt.Printf("%2d. [%s] %s %s %s #%s  %s\n",
			i+1, c.ID, c.Player, c.Year, c.Set, c.CardNumber, formatMoney(c.Price))
	}
	return nil
}

// promptCardInput collects the user-editable card fields.
func (a *App) promptCardInput() (models.CardInput, error) {
	var in models.CardInput
	var err error

	if in.Player, err = getSimpleText(a.reader, "Player name", os.Stdout); err != nil {
		return in, err
	}
	if in.Year, err = getSimpleText(a.reader, "Year (4 digits)", os.Stdout); err != nil {
		return in, err
	}
	if in.Set, err = getSimpleText(a.reader, "Set", os.Stdout); err != nil {
		return in, err
	}
	if in.CardNumber, err = getSimpleText(a.reader, "Card ID (6 characters)", os.Stdout); err != nil {
		return in, err
	}
	if in.Notes, err = getSimpleText(a.reader, "Notes (optional)", os.Stdout); err != nil {
		return in, err
	}
	return in, nil
}

// reportCardError prints a friendly message for the errors the workflow
// returns before touching the network.
func reportCardError(err error) {
	var fieldErrs models.FieldErrors
	switch {
	case errors.Is(err, common.ErrPriceRequired):
		fmt.Println("Please enter the card's declared value first.")
	case errors.As(err, &fieldErrs):
		fmt.Println("Please fix the following:")
		for _, field := range []string{"player", "year", "set", "cardNumber"} {
			if msg, ok := fieldErrs[field]; ok {
				fmt.Printf("  %s: %s\n", field, msg)
			}
		}
	case errors.Is(err, common.ErrCardNotFound):
		fmt.Println("No card with that id in the submission.")
	default:
		fmt.Println("Error:", err)
	}
}

// AddCard prompts for card details and adds the card to the submission.
func (a *App) AddCard(ctx context.Context) error {
	in, err := a.promptCardInput()
	if err != nil {
		return err
	}
	price, err := getAmount(a.reader, "Declared value (e.g. 49)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if err := a.workflow.AddCard(ctx, in, price); err != nil {
		reportCardError(err)
		return err
	}

	fmt.Println("Card added.")
	return nil
}

// EditCard prompts for a card id and replacement details.
func (a *App) EditCard(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Card id to edit", os.Stdout)
	if err != nil {
		return err
	}
	in, err := a.promptCardInput()
	if err != nil {
		return err
	}
	price, err := getAmount(a.reader, "Declared value (e.g. 49)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if err := a.workflow.UpdateCard(ctx, id, in, price); err != nil {
		reportCardError(err)
		return err
	}

	fmt.Println("Card updated.")
	return nil
}

// DeleteCard soft-deletes a card after confirmation.
func (a *App) DeleteCard(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Card id to delete", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete card %s? (y/n)", id), os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.workflow.DeleteCard(ctx, id); err != nil {
		reportCardError(err)
		return err
	}

	fmt.Println("Card removed.")
	return nil
}

// Review locks in the working submission and summarizes it before payment.
func (a *App) Review(ctx context.Context) error {
	id, err := a.workflow.Continue(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoCards) {
			fmt.Println("Add at least one card before continuing.")
		} else {
			fmt.Println("Error:", err)
		}
		return err
	}

	cards := a.workflow.Cards()
	var total float64
	for _, c := range cards {
		total += c.Price
	}

	fmt.Printf("Submission %s — %d card(s), %s tier\n", id, len(cards), a.workflow.Tier())
	fmt.Printf("Declared value total: %s\n", formatMoney(total))
	fmt.Println("Type 'pay' when you are ready.")
	return nil
}

// Save caches the in-progress submission locally.
func (a *App) Save(ctx context.Context) error {
	a.workflow.SaveAndExit(ctx)
	fmt.Println("Progress saved.")
	return nil
}
