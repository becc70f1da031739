// Package cache implements the client's session cache: a key/value store
// holding the auth token, the authenticated user, a snapshot of the user's
// submissions, an in-progress submission form, and pricing tiers.
//
// The cache is pure storage. It has no policy beyond JSON encode/decode and
// namespacing by key; read and parse failures are swallowed and treated as
// cache misses, never surfaced to callers.
package cache

import "context"

// Cache namespaces. These match the keys the web client used, so a cache
// DB written by one client version stays readable by the next.
const (
	KeyToken          = "auth_token"
	KeyUser           = "auth_user"
	KeySubmissions    = "submissions"
	KeySubmissionForm = "submission_form"
	KeyPricingTiers   = "pricing_tiers"
)

// KV is the minimal raw key/value surface the session cache is built on.
// Get returns (nil, nil) on a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
