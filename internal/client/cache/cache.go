package cache

import (
	"context"
	"encoding/json"

	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/logging"
)

// Cache exposes the namespaced session-cache accessors over a raw KV.
// Every read treats storage or decode failures as a miss.
type Cache struct {
	kv  KV
	log logging.Logger
}

func New(kv KV, log logging.Logger) *Cache {
	return &Cache{kv: kv, log: log.With("component", "cache")}
}

// Clear wipes all namespaces. Invoked on logout.
func (c *Cache) Clear(ctx context.Context) error {
	return c.kv.Clear(ctx)
}

// getJSON decodes the value at key into out and reports whether a usable
// value was present. Misses and corrupt values both report false.
func (c *Cache) getJSON(ctx context.Context, key string, out any) bool {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		c.log.Warn(ctx, "cache read failed", "key", key, "err", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn(ctx, "cache entry corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (c *Cache) setJSON(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn(ctx, "cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.kv.Set(ctx, key, raw); err != nil {
		c.log.Warn(ctx, "cache write failed", "key", key, "err", err)
	}
}

func (c *Cache) remove(ctx context.Context, key string) {
	if err := c.kv.Remove(ctx, key); err != nil {
		c.log.Warn(ctx, "cache remove failed", "key", key, "err", err)
	}
}

// Token returns the cached bearer token, or "" when absent.
func (c *Cache) Token(ctx context.Context) string {
	raw, err := c.kv.Get(ctx, KeyToken)
	if err != nil {
		c.log.Warn(ctx, "cache read failed", "key", KeyToken, "err", err)
		return ""
	}
	return string(raw)
}

func (c *Cache) SetToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := c.kv.Set(ctx, KeyToken, []byte(token)); err != nil {
		c.log.Warn(ctx, "cache write failed", "key", KeyToken, "err", err)
	}
}

func (c *Cache) RemoveToken(ctx context.Context) {
	c.remove(ctx, KeyToken)
}

// User returns the cached authenticated user, or nil.
func (c *Cache) User(ctx context.Context) *models.User {
	var u models.User
	if !c.getJSON(ctx, KeyUser, &u) {
		return nil
	}
	return &u
}

func (c *Cache) SetUser(ctx context.Context, u *models.User) {
	if u == nil {
		return
	}
	c.setJSON(ctx, KeyUser, u)
}

func (c *Cache) RemoveUser(ctx context.Context) {
	c.remove(ctx, KeyUser)
}

// Submissions returns the cached submissions snapshot, or nil on a miss.
// A cached empty list is returned as an empty non-nil slice.
func (c *Cache) Submissions(ctx context.Context) []models.Submission {
	subs := []models.Submission{}
	if !c.getJSON(ctx, KeySubmissions, &subs) {
		return nil
	}
	return subs
}

func (c *Cache) SetSubmissions(ctx context.Context, subs []models.Submission) {
	if subs == nil {
		subs = []models.Submission{}
	}
	c.setJSON(ctx, KeySubmissions, subs)
}

// RemoveSubmissions invalidates the snapshot, forcing the next read to
// fall through to the network.
func (c *Cache) RemoveSubmissions(ctx context.Context) {
	c.remove(ctx, KeySubmissions)
}

// SubmissionForm returns the cached in-progress form, or nil.
func (c *Cache) SubmissionForm(ctx context.Context) *models.CachedForm {
	var f models.CachedForm
	if !c.getJSON(ctx, KeySubmissionForm, &f) {
		return nil
	}
	return &f
}

func (c *Cache) SetSubmissionForm(ctx context.Context, f models.CachedForm) {
	c.setJSON(ctx, KeySubmissionForm, f)
}

func (c *Cache) RemoveSubmissionForm(ctx context.Context) {
	c.remove(ctx, KeySubmissionForm)
}

// PricingTiers returns the cached tier quotes, or nil.
func (c *Cache) PricingTiers(ctx context.Context) map[models.ServiceTier]models.PricingQuote {
	var tiers map[models.ServiceTier]models.PricingQuote
	if !c.getJSON(ctx, KeyPricingTiers, &tiers) {
		return nil
	}
	return tiers
}

func (c *Cache) SetPricingTiers(ctx context.Context, tiers map[models.ServiceTier]models.PricingQuote) {
	c.setJSON(ctx, KeyPricingTiers, tiers)
}
