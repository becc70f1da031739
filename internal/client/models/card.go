// Package models defines the wire-level data types of the grading service
// and the client-side validation rules that run before any network call.
package models

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// CardStatus tracks whether the owning submission's payment covered a card.
type CardStatus string

const (
	CardStatusUnpaid CardStatus = "unpaid"
	CardStatusPaid   CardStatus = "paid"
)

// FlexID tolerates both string and numeric ids on the wire. Legacy rows
// carry millisecond-timestamp ids; everything the client creates is a UUID.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// Card is a single trading card inside a submission. Cards are soft-deleted:
// IsDeleted hides them from every view, but they stay in the payload so the
// server can reconcile the batch.
type Card struct {
	ID         FlexID     `json:"id"`
	Player     string     `json:"player"`
	Year       string     `json:"year"`
	Set        string     `json:"set"`
	CardNumber string     `json:"cardNumber"`
	Notes      string     `json:"notes,omitempty"`
	Price      float64    `json:"price"`
	Status     CardStatus `json:"status"`
	IsDeleted  bool       `json:"isDeleted"`
	CreatedAt  string     `json:"createdAt"`
}

// Visible reports whether the card belongs in the user-facing list:
// not soft-deleted and not yet covered by a payment. An empty status
// counts as unpaid, matching how the server omits it on fresh cards.
func (c Card) Visible() bool {
	return (c.Status == "" || c.Status == CardStatusUnpaid) && !c.IsDeleted
}

// CardInput carries the user-editable card fields, before pricing.
type CardInput struct {
	Player     string
	Year       string
	Set        string
	CardNumber string
	Notes      string
}

// FieldErrors maps field name to a human-readable validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

var (
	playerRe     = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	yearRe       = regexp.MustCompile(`^\d{4}$`)
	cardNumberRe = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)
)

// ValidateCard checks the card fields synchronously. It returns nil when the
// input is acceptable, or a FieldErrors describing every failing field.
func ValidateCard(in CardInput) FieldErrors {
	errs := FieldErrors{}

	switch {
	case in.Player == "":
		errs["player"] = "Required"
	case len(in.Player) < 3:
		errs["player"] = "Minimum 3 characters required."
	case !playerRe.MatchString(in.Player):
		errs["player"] = "Only alphabets allowed."
	}

	switch {
	case in.Year == "":
		errs["year"] = "Required"
	case !yearRe.MatchString(in.Year):
		errs["year"] = "Year must be exactly 4 digits."
	}

	if in.Set == "" {
		errs["set"] = "Required"
	}

	switch {
	case in.CardNumber == "":
		errs["cardNumber"] = "Required"
	case len(in.CardNumber) != 6:
		errs["cardNumber"] = "Card ID must be exactly 6 characters."
	case !cardNumberRe.MatchString(in.CardNumber):
		errs["cardNumber"] = "Only alphanumeric characters allowed."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
