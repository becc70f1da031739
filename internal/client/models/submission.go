package models

// PaymentStatus is the aggregate payment state of a submission.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

// SubmissionStatus is the grading pipeline stage, advanced by an admin.
// The client may request any transition; ordering is a server concern.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusInReview  SubmissionStatus = "in_review"
	StatusGrading   SubmissionStatus = "grading"
	StatusCompleted SubmissionStatus = "completed"
	StatusShipped   SubmissionStatus = "shipped"
)

// SubmissionStatuses lists the pipeline stages in their nominal order.
var SubmissionStatuses = []SubmissionStatus{
	StatusSubmitted,
	StatusInReview,
	StatusGrading,
	StatusCompleted,
	StatusShipped,
}

// ValidSubmissionStatus reports whether s names a known pipeline stage.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	for _, known := range SubmissionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// UserRef is the owning-user reference embedded in admin submission rows.
type UserRef struct {
	ID    FlexID `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Submission is a batch of cards with one aggregate payment and status
// lifecycle. The id field mirrors the server's document id.
type Submission struct {
	ID               FlexID           `json:"_id"`
	User             *UserRef         `json:"userId,omitempty"`
	Cards            []Card           `json:"cards"`
	CardCount        int              `json:"cardCount"`
	ServiceTier      ServiceTier      `json:"serviceTier"`
	PaymentStatus    PaymentStatus    `json:"paymentStatus"`
	SubmissionStatus SubmissionStatus `json:"submissionStatus"`
	Amount           float64          `json:"amount"`
	CreatedAt        string           `json:"createdAt"`
}

// Paid reports whether the submission's payment has completed. Once paid,
// its cards are immutable from the client's perspective.
func (s Submission) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// VisibleCards returns the cards that still belong in the working list:
// unpaid (or status-less) and not soft-deleted.
func (s Submission) VisibleCards() []Card {
	out := make([]Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}

// CachedForm is the ephemeral snapshot of an in-progress submission held in
// the session cache so an interrupted session does not lose unsaved work.
// Invalidated on successful persist or payment.
type CachedForm struct {
	Cards       []Card      `json:"cards"`
	CardCount   int         `json:"cardCount"`
	ServiceTier ServiceTier `json:"serviceTier"`
}
