package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Server deployments use this to keep per-project schedule caches separate
// while sharing one Redis instance.
//
// Example usage:
//
//	// Project-specific keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed key for a stored plan snapshot.
func (k *ScopedKeyer) PlanKey(planHash string) string {
	return k.prefix + k.inner.PlanKey(planHash)
}

// ScheduleKey generates a prefixed key for a computed schedule.
func (k *ScopedKeyer) ScheduleKey(planHash string, opts ScheduleKeyOpts) string {
	return k.prefix + k.inner.ScheduleKey(planHash, opts)
}
