package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/common"
	"github.com/slabvault/slabvault/internal/logging"
)

// AdminTransport is the slice of the API client the workbench needs.
type AdminTransport interface {
	AdminSubmissions(ctx context.Context, page int, status models.SubmissionStatus) (*models.AdminPage, error)
	AdminAnalytics(ctx context.Context) (*models.Analytics, error)
	UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error)
}

// DateRange narrows the fetched page to a recent window.
type DateRange string

const (
	RangeLast7Days  DateRange = "last7days"
	RangeLast30Days DateRange = "last30days"
)

// SortOrder orders the fetched page by creation time.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Filter refines the fetched page locally. The fields are independent and
// typed; the old UI collapsed status and date keywords into one dropdown
// value, which this deliberately does not reproduce.
type Filter struct {
	// Search matches customer name, email, or submission id,
	// case-insensitively.
	Search string
	// Status keeps only submissions in one pipeline stage.
	Status models.SubmissionStatus
	// Range keeps only submissions created within a recent window.
	Range DateRange
	// Sort orders by creation time.
	Sort SortOrder
	// Date keeps only submissions created on this exact day (2006-01-02).
	Date string
}

// ParseFilterToken maps a single REPL token onto the typed filter: either a
// pipeline status or a date keyword.
func ParseFilterToken(tok string) (Filter, error) {
	switch tok {
	case "":
		return Filter{}, nil
	case string(SortNewest), string(SortOldest):
		return Filter{Sort: SortOrder(tok)}, nil
	case string(RangeLast7Days), string(RangeLast30Days):
		return Filter{Range: DateRange(tok)}, nil
	}
	if models.ValidSubmissionStatus(models.SubmissionStatus(tok)) {
		return Filter{Status: models.SubmissionStatus(tok)}, nil
	}
	return Filter{}, fmt.Errorf("unknown filter %q", tok)
}

// Workbench is the admin view over submissions: one server-paginated page
// at a time plus the aggregate analytics, with local refinement and
// optimistic status changes.
type Workbench struct {
	transport AdminTransport
	log       logging.Logger

	rows       []models.Submission
	pagination models.Pagination
	analytics  *models.Analytics

	// now is a test seam for the relative date ranges.
	now func() time.Time
}

func NewWorkbench(t AdminTransport, log logging.Logger) *Workbench {
	return &Workbench{
		transport: t,
		log:       log.With("component", "admin"),
		now:       time.Now,
	}
}

// LoadPage fetches one page of submissions, optionally status-filtered
// server-side.
func (w *Workbench) LoadPage(ctx context.Context, page int, status models.SubmissionStatus) error {
	if page < 1 {
		page = 1
	}
	res, err := w.transport.AdminSubmissions(ctx, page, status)
	if err != nil {
		return fmt.Errorf("load submissions page: %w", err)
	}
	w.rows = res.Submissions
	w.pagination = res.Pagination
	return nil
}

// LoadAnalytics fetches the aggregate summary.
func (w *Workbench) LoadAnalytics(ctx context.Context) error {
	a, err := w.transport.AdminAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("load analytics: %w", err)
	}
	w.analytics = a
	return nil
}

// Submissions returns a copy of the current page.
func (w *Workbench) Submissions() []models.Submission {
	return cloneSubmissions(w.rows)
}

func (w *Workbench) Pagination() models.Pagination {
	return w.pagination
}

func (w *Workbench) Analytics() *models.Analytics {
	return w.analytics
}

// Refine applies search, status/date filters and sorting over the fetched
// page only; it never reaches for other pages.
func (w *Workbench) Refine(f Filter) []models.Submission {
	out := cloneSubmissions(w.rows)

	if s := strings.TrimSpace(f.Search); s != "" {
		needle := strings.ToLower(s)
		kept := out[:0]
		for _, sub := range out {
			var name, email string
			if sub.User != nil {
				name = strings.ToLower(sub.User.Name)
				email = strings.ToLower(sub.User.Email)
			}
			id := strings.ToLower(string(sub.ID))
			if strings.Contains(name, needle) || strings.Contains(email, needle) || strings.Contains(id, needle) {
				kept = append(kept, sub)
			}
		}
		out = kept
	}

	if f.Status != "" {
		kept := out[:0]
		for _, sub := range out {
			if sub.SubmissionStatus == f.Status {
				kept = append(kept, sub)
			}
		}
		out = kept
	}

	if f.Date != "" {
		if day, err := time.Parse("2006-01-02", f.Date); err == nil {
			kept := out[:0]
			for _, sub := range out {
				if createdAt(sub).Format("2006-01-02") == day.Format("2006-01-02") {
					kept = append(kept, sub)
				}
			}
			out = kept
		}
	}

	if f.Range != "" {
		var cutoff time.Time
		switch f.Range {
		case RangeLast7Days:
			cutoff = w.now().AddDate(0, 0, -7)
		case RangeLast30Days:
			cutoff = w.now().AddDate(0, 0, -30)
		}
		if !cutoff.IsZero() {
			kept := out[:0]
			for _, sub := range out {
				if !createdAt(sub).Before(cutoff) {
					kept = append(kept, sub)
				}
			}
			out = kept
		}
	}

	switch f.Sort {
	case SortNewest:
		sortByCreatedAt(out, true)
	case SortOldest:
		sortByCreatedAt(out, false)
	}

	return out
}

// ChangeStatus requests a pipeline transition with an optimistic local
// update: the page is mutated immediately, and a failed request restores
// the snapshot taken just before the mutation. On success the row is
// reconciled with the status/payment fields the server returns, when it
// returns any.
func (w *Workbench) ChangeStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	if !models.ValidSubmissionStatus(status) {
		return fmt.Errorf("unknown submission status %q", status)
	}

	idx := -1
	for i := range w.rows {
		if string(w.rows[i].ID) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrNotFound
	}

	snap := TakeSnapshot(cloneSubmissions, w.rows)
	w.rows[idx].SubmissionStatus = status

	saved, err := w.transport.UpdateSubmissionStatus(ctx, id, status)
	if err != nil {
		w.rows = snap.Value()
		w.log.Warn(ctx, "status change failed, rolled back", "submission", id, "err", err)
		return fmt.Errorf("update status: %w", err)
	}

	if saved != nil {
		if saved.SubmissionStatus != "" {
			w.rows[idx].SubmissionStatus = saved.SubmissionStatus
		}
		if saved.PaymentStatus != "" {
			w.rows[idx].PaymentStatus = saved.PaymentStatus
		}
	}
	w.log.Info(ctx, "status changed", "submission", id, "status", status)
	return nil
}

// createdAt parses the wire timestamp; unparseable values sort last and
// never match date filters.
func createdAt(sub models.Submission) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, sub.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sortByCreatedAt(subs []models.Submission, newestFirst bool) {
	sort.SliceStable(subs, func(i, j int) bool {
		a, b := createdAt(subs[i]), createdAt(subs[j])
		if newestFirst {
			return a.After(b)
		}
		return a.Before(b)
	})
}
