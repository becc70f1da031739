package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/slabvault/slabvault/internal/client/models"
)

// Typed wrappers over the REST contract. Each mirrors one endpoint and
// unwraps the server's response envelope.

type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type submissionsEnvelope struct {
	Submissions []models.Submission `json:"submissions"`
}

type submissionEnvelope struct {
	Submission *models.Submission `json:"submission"`
}

type adminListEnvelope struct {
	Submissions []models.Submission `json:"submissions"`
	Pagination  models.Pagination   `json:"pagination"`
}

type analyticsEnvelope struct {
	Analytics models.Analytics `json:"analytics"`
}

// PaymentResult carries whichever intent ids the payment endpoints return.
type PaymentResult struct {
	PaymentIntentID string `json:"paymentIntentId"`
	SetupIntentID   string `json:"setupIntentId"`
	Status          string `json:"status"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResponse
	if err := c.Call(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.Call(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Call(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, email, newPassword string) error {
	body := map[string]string{"token": token, "email": email, "newPassword": newPassword}
	return c.Call(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

func (c *Client) Submissions(ctx context.Context) ([]models.Submission, error) {
	var out submissionsEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/submissions", nil, &out); err != nil {
		return nil, err
	}
	return out.Submissions, nil
}

func (c *Client) VaultSubmissions(ctx context.Context) ([]models.Submission, error) {
	var out submissionsEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/submissions/vault", nil, &out); err != nil {
		return nil, err
	}
	return out.Submissions, nil
}

func (c *Client) PaidSubmissions(ctx context.Context) ([]models.Submission, error) {
	var out submissionsEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/submissions/paid", nil, &out); err != nil {
		return nil, err
	}
	return out.Submissions, nil
}

func (c *Client) SubmissionByID(ctx context.Context, id string) (*models.Submission, error) {
	var out submissionEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/submissions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}

func (c *Client) Metrics(ctx context.Context) (*models.Metrics, error) {
	var out models.Metrics
	if err := c.Call(ctx, http.MethodGet, "/api/submissions/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSubmission(ctx context.Context, form models.CachedForm) (*models.Submission, error) {
	var out submissionEnvelope
	if err := c.Call(ctx, http.MethodPost, "/api/submissions", form, &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}

func (c *Client) UpdateSubmission(ctx context.Context, id string, form models.CachedForm) (*models.Submission, error) {
	var out submissionEnvelope
	if err := c.Call(ctx, http.MethodPut, "/api/submissions/"+url.PathEscape(id), form, &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}

func (c *Client) PayNow(ctx context.Context, submissionID, paymentMethodID string) (*PaymentResult, error) {
	body := map[string]string{"submissionId": submissionID, "paymentMethodId": paymentMethodID}
	var out PaymentResult
	if err := c.Call(ctx, http.MethodPost, "/api/payments/pay-now", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmPayment(ctx context.Context, submissionID, paymentIntentID string) error {
	body := map[string]string{"submissionId": submissionID, "paymentIntentId": paymentIntentID}
	return c.Call(ctx, http.MethodPost, "/api/payments/confirm-payment", body, nil)
}

func (c *Client) PayLater(ctx context.Context, submissionID string) (*PaymentResult, error) {
	body := map[string]string{"submissionId": submissionID}
	var out PaymentResult
	if err := c.Call(ctx, http.MethodPost, "/api/payments/pay-later", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConfirmPaymentMethod(ctx context.Context, submissionID, setupIntentID, paymentMethodID string) error {
	body := map[string]string{
		"submissionId":    submissionID,
		"setupIntentId":   setupIntentID,
		"paymentMethodId": paymentMethodID,
	}
	return c.Call(ctx, http.MethodPost, "/api/payments/confirm-payment-method", body, nil)
}

// AdminSubmissions fetches one server-paginated page, optionally filtered
// by submission status.
func (c *Client) AdminSubmissions(ctx context.Context, page int, status models.SubmissionStatus) (*models.AdminPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if status != "" {
		params.Set("status", string(status))
	}

	var out adminListEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/admin/submissions?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &models.AdminPage{Submissions: out.Submissions, Pagination: out.Pagination}, nil
}

func (c *Client) AdminAnalytics(ctx context.Context) (*models.Analytics, error) {
	var out analyticsEnvelope
	if err := c.Call(ctx, http.MethodGet, "/api/admin/analytics", nil, &out); err != nil {
		return nil, err
	}
	return &out.Analytics, nil
}

// UpdateSubmissionStatus requests a status transition. The returned
// submission may be nil when the server does not echo the row back.
func (c *Client) UpdateSubmissionStatus(ctx context.Context, id string, status models.SubmissionStatus) (*models.Submission, error) {
	if !models.ValidSubmissionStatus(status) {
		return nil, fmt.Errorf("unknown submission status %q", status)
	}
	endpoint := "/api/admin/submissions/" + url.PathEscape(id) + "/status"
	var out submissionEnvelope
	if err := c.Call(ctx, http.MethodPatch, endpoint, map[string]string{"status": string(status)}, &out); err != nil {
		return nil, err
	}
	return out.Submission, nil
}
