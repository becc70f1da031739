package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/client/services"
)

func (a *App) requireAdmin() bool {
	if !a.isAdmin() {
		fmt.Println("Admin access required.")
		return false
	}
	return true
}

func printSubmissionRows(rows []models.Submission) {
	if len(rows) == 0 {
		fmt.Println("No submissions.")
		return
	}
	for _, s := range rows {
		owner := "-"
		if s.User != nil {
			owner = fmt.Sprintf("%s <%s>", s.User.Name, s.User.Email)
		}
		fmt.Printf("  [%s] %-10s %-7s %2d card(s)  %s  %s  %s\n",
			s.ID, s.SubmissionStatus, s.PaymentStatus, s.CardCount,
			formatMoney(s.Amount), formatDate(s.CreatedAt), owner)
	}
}

// AdminList loads and prints one page of all submissions.
func (a *App) AdminList(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	pageText, err := getSimpleText(a.reader, "Page (Enter for 1)", os.Stdout)
	if err != nil {
		return err
	}
	page := 1
	if pageText != "" {
		page, err = strconv.Atoi(pageText)
		if err != nil {
			fmt.Printf("Not a valid page: %q\n", pageText)
			return err
		}
	}
	statusText, err := getSimpleText(a.reader, "Status filter (Enter for all)", os.Stdout)
	if err != nil {
		return err
	}
	status := models.SubmissionStatus(statusText)
	if statusText != "" && !models.ValidSubmissionStatus(status) {
		fmt.Printf("Unknown status %q. Known: %s\n", statusText, statusList())
		return nil
	}

	if err := a.admin.LoadPage(ctx, page, status); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	printSubmissionRows(a.admin.Submissions())
	p := a.admin.Pagination()
	fmt.Printf("Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	return nil
}

// AdminAnalytics prints the aggregate summary.
func (a *App) AdminAnalytics(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	if err := a.admin.LoadAnalytics(ctx); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	s := a.admin.Analytics()
	fmt.Printf("Submissions: %d (%d in grading)\n", s.TotalSubmissions, s.InGradingCount)
	fmt.Printf("Revenue: %s paid, %s outstanding, %s total\n",
		formatMoney(s.PaidRevenue), formatMoney(s.UnpaidRevenue), formatMoney(s.TotalRevenue))
	return nil
}

// AdminFilter refines the loaded page locally by search text and one
// status/date/sort keyword.
func (a *App) AdminFilter(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	search, err := getSimpleText(a.reader, "Search (name, email or id; Enter to skip)", os.Stdout)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader,
		fmt.Sprintf("Keyword (%s, newest, oldest, last7days, last30days; Enter to skip)", statusList()),
		os.Stdout)
	if err != nil {
		return err
	}

	f, err := services.ParseFilterToken(token)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}
	f.Search = search

	printSubmissionRows(a.admin.Refine(f))
	return nil
}

// AdminSetStatus changes a submission's pipeline status.
func (a *App) AdminSetStatus(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Submission id", os.Stdout)
	if err != nil {
		return err
	}
	statusText, err := getSimpleText(a.reader, "New status ("+statusList()+")", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.admin.ChangeStatus(ctx, id, models.SubmissionStatus(statusText)); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("Submission %s is now %s.\n", id, statusText)
	return nil
}

func statusList() string {
	parts := make([]string, 0, len(models.SubmissionStatuses))
	for _, s := range models.SubmissionStatuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
