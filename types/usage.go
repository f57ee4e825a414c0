package types

// Usage holds raw vendor-native token counters. A nil field means the vendor
// has not reported that counter; zero is a valid reported value and must not
// be confused with absence. Normalization to canonical attribute names
// happens once at emission time, not here.
type Usage struct {
	InputTokens      *int64
	OutputTokens     *int64
	TotalTokens      *int64
	CacheReadTokens  *int64
	CacheWriteTokens *int64
}

// Count returns a pointer to n, for building Usage literals.
func Count(n int64) *int64 { return &n }

// Empty reports whether no counter has been reported yet.
func (u Usage) Empty() bool {
	return u.InputTokens == nil && u.OutputTokens == nil && u.TotalTokens == nil &&
		u.CacheReadTokens == nil && u.CacheWriteTokens == nil
}

// FieldPolicy declares how one usage counter merges across events.
type FieldPolicy int

const (
	// PolicySnapshot: the vendor emits cumulative totals; a present field
	// overwrites the prior value.
	PolicySnapshot FieldPolicy = iota
	// PolicyIncremental: the vendor emits per-event deltas; present fields
	// are summed into a running total.
	PolicyIncremental
)

// UsagePolicy is the fixed per-vendor merge policy, one entry per canonical
// counter. It is declared statically per vendor and never inferred from
// field presence at runtime.
type UsagePolicy struct {
	InputTokens      FieldPolicy
	OutputTokens     FieldPolicy
	TotalTokens      FieldPolicy
	CacheReadTokens  FieldPolicy
	CacheWriteTokens FieldPolicy
}

var snapshotPolicy = UsagePolicy{}

// titanPolicy: the flat-fields wire format reports output tokens as a
// per-chunk count, so only that field accumulates; the input count arrives
// once as a cumulative value.
var titanPolicy = UsagePolicy{OutputTokens: PolicyIncremental}

// PolicyFor returns the usage merge policy for a vendor. Unknown vendors get
// the all-snapshot policy.
func PolicyFor(v Vendor) UsagePolicy {
	if v == VendorTitan {
		return titanPolicy
	}
	return snapshotPolicy
}
