package ratelimit

import (
	"strings"
	"time"
)

// UnknownKey is the bucket shared by every caller without an identity.
const UnknownKey = "unknown"

const (
	GlobalCode    = "RATE_LIMIT_EXCEEDED"
	GlobalMessage = "Too many requests, please try again later."
	CreateCode    = "CREATE_RATE_LIMIT_EXCEEDED"
	CreateMessage = "Too many links created, please try again later."
)

// PolicyConfig describes one independently counted limit.
type PolicyConfig struct {
	Name        string
	Window      time.Duration
	MaxRequests int
	Message     string
	Code        string
}

// GlobalPolicyConfig is the limit applied to every route.
func GlobalPolicyConfig(maxRequests int, window time.Duration) PolicyConfig {
	return PolicyConfig{Name: "global", Window: window, MaxRequests: maxRequests, Message: GlobalMessage, Code: GlobalCode}
}

// CreatePolicyConfig is the limit applied to link creation only.
func CreatePolicyConfig(maxRequests int, window time.Duration) PolicyConfig {
	return PolicyConfig{Name: "create", Window: window, MaxRequests: maxRequests, Message: CreateMessage, Code: CreateCode}
}

// Decision carries the admit/deny outcome plus response metadata.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// Reset is the window end in Unix seconds, rounded up.
	Reset int64
	// RetryAfter is whole seconds until the window ends, rounded up; only set on denial.
	RetryAfter int64
	Message    string
	Code       string
}

// Policy applies a PolicyConfig to caller identities using its own private
// WindowStore.
type Policy struct {
	cfg   PolicyConfig
	store *WindowStore
}

func NewPolicy(cfg PolicyConfig, opts ...StoreOption) *Policy {
	return &Policy{
		cfg:   cfg,
		store: NewWindowStore(cfg.Window, cfg.MaxRequests, opts...),
	}
}

func (p *Policy) Config() PolicyConfig { return p.cfg }

// Evaluate counts one request for identity and decides whether it may proceed.
func (p *Policy) Evaluate(identity string) Decision {
	key := strings.TrimSpace(identity)
	if key == "" {
		key = UnknownKey
	}

	res := p.store.Check(key)
	dec := Decision{
		Allowed:   !res.Limited,
		Limit:     p.cfg.MaxRequests,
		Remaining: res.Remaining,
		Reset:     ceilSeconds(res.ResetAt.UnixMilli()),
	}
	if res.Limited {
		dec.RetryAfter = max(ceilSeconds(res.ResetAt.UnixMilli()-p.store.now().UnixMilli()), 0)
		dec.Message = p.cfg.Message
		dec.Code = p.cfg.Code
	}
	return dec
}

// Start begins reclaiming expired windows in the background.
func (p *Policy) Start() { p.store.Start() }

// Stop halts background reclamation. Safe to call repeatedly.
func (p *Policy) Stop() { p.store.Stop() }

func ceilSeconds(ms int64) int64 {
	if ms <= 0 {
		return ms / 1000
	}
	return (ms + 999) / 1000
}
