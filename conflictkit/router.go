package conflictkit

import "errors"

// Rule binds a matcher Spec to a Strategy. Rules are evaluated in
// insertion order with first-match-wins semantics.
type Rule struct {
	Name     string
	Matcher  Spec
	Strategy Strategy
}

// Hooks provides optional callbacks for observability around routing.
// All hooks are optional; nil functions are safe no-ops.
type Hooks struct {
	OnRuleMatched func(pair Pair, rule Rule)
	OnResolved    func(pair Pair, result Resolved)
	OnFallback    func(pair Pair)
}

type routerOptions struct {
	rules    []Rule
	fallback Strategy
	hooks    Hooks
}

// Option configures Router construction.
type Option interface{ apply(*routerOptions) }

type optionFn func(*routerOptions)

func (f optionFn) apply(o *routerOptions) { f(o) }

// WithRule appends a rule with a custom matcher and strategy in insertion order.
func WithRule(name string, matcher Spec, strategy Strategy) Option {
	return optionFn(func(o *routerOptions) {
		o.rules = append(o.rules, Rule{Name: name, Matcher: matcher, Strategy: strategy})
	})
}

// WithFallback sets the required fallback Strategy.
func WithFallback(s Strategy) Option {
	return optionFn(func(o *routerOptions) { o.fallback = s })
}

// WithHooks sets optional observability hooks. Zero-value safe.
func WithHooks(h Hooks) Option {
	return optionFn(func(o *routerOptions) { o.hooks = h })
}

// Router dispatches record pairs to strategies based on an ordered rule
// set, delegating to the fallback when no rule matches. Router itself
// implements Strategy, so routed resolution stays total.
type Router struct {
	rules    []Rule
	fallback Strategy
	hooks    Hooks
}

var _ Strategy = (*Router)(nil)

// NewRouter constructs a Router with validation.
// Invariants:
//   - A non-nil fallback is required (keeps Resolve total)
//   - No rule may have a nil matcher or strategy
func NewRouter(opts ...Option) (*Router, error) {
	cfg := &routerOptions{}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	if cfg.fallback == nil {
		return nil, errors.New("router requires a non-nil fallback strategy")
	}
	for _, r := range cfg.rules {
		if r.Matcher == nil {
			return nil, errors.New("rule " + r.Name + " has nil matcher")
		}
		if r.Strategy == nil {
			return nil, errors.New("rule " + r.Name + " has nil strategy")
		}
	}

	return &Router{rules: cfg.rules, fallback: cfg.fallback, hooks: cfg.hooks}, nil
}

// DefaultRouter wires the built-in strategies behind sensible matchers:
// tombstones first, then field-level shadow timestamps, then version
// counters, with last-write-wins as the fallback.
func DefaultRouter() *Router {
	r, err := NewRouter(
		WithRule("tombstone", HasTombstone(), DeleteUpdate{}),
		WithRule("field-times", HasFieldTimes(), FieldMerge{}),
		WithRule("versioned", HasVersion(), VersionBased{}),
		WithFallback(LastWriteWins{}),
	)
	if err != nil {
		// All inputs are static; construction cannot fail.
		panic(err)
	}
	return r
}

func (r *Router) Name() string { return "router" }

// Resolve implements Strategy using first-match-wins over the ordered
// rules, else delegates to the fallback.
func (r *Router) Resolve(local, remote Record) Resolved {
	pair := Pair{Local: local, Remote: remote}
	for _, rule := range r.rules {
		if rule.Matcher(pair) {
			if r.hooks.OnRuleMatched != nil {
				r.hooks.OnRuleMatched(pair, rule)
			}
			res := rule.Strategy.Resolve(local, remote)
			if r.hooks.OnResolved != nil {
				r.hooks.OnResolved(pair, res)
			}
			return res
		}
	}
	if r.hooks.OnFallback != nil {
		r.hooks.OnFallback(pair)
	}
	res := r.fallback.Resolve(local, remote)
	if r.hooks.OnResolved != nil {
		r.hooks.OnResolved(pair, res)
	}
	return res
}
