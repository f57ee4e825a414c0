package types

import "strings"

// Vendor identifies the model family whose wire format determines the shape
// of streamed events. The zero value means the model could not be mapped and
// the stream must be passed through uninstrumented.
type Vendor string

const (
	VendorUnknown Vendor = ""

	// VendorAnthropic is the message-oriented format: every event carries an
	// explicit "type" discriminator (message_start, content_block_delta, ...).
	VendorAnthropic Vendor = "anthropic"

	// VendorNova is the nested-output format: no "type" field, events are
	// single-key objects (contentBlockDelta, messageStop, metadata, ...).
	VendorNova Vendor = "nova"

	// VendorTitan is the flat-fields format: outputText, completionReason and
	// amazon-bedrock-invocationMetrics live at the top level of each chunk.
	VendorTitan Vendor = "titan"

	// VendorMeta is the single-field format: each chunk is a "generation"
	// string plus flat token counters.
	VendorMeta Vendor = "meta"

	// VendorConverse tags streams delivered by the unified Converse transport,
	// whose events arrive pre-typed and need no structural sniffing.
	VendorConverse Vendor = "converse"
)

// VendorFromModelID maps a managed-API model identifier to its vendor.
// Substring matching tolerates cross-region inference profiles that prefix
// the id with a region tag (e.g. "us.anthropic.claude-sonnet-...").
func VendorFromModelID(modelID string) Vendor {
	switch {
	case strings.Contains(modelID, "anthropic."):
		return VendorAnthropic
	case strings.Contains(modelID, "amazon.nova"):
		return VendorNova
	case strings.Contains(modelID, "amazon.titan"):
		return VendorTitan
	case strings.Contains(modelID, "meta."):
		return VendorMeta
	default:
		return VendorUnknown
	}
}

// Known reports whether v is one of the supported vendors.
func (v Vendor) Known() bool {
	switch v {
	case VendorAnthropic, VendorNova, VendorTitan, VendorMeta, VendorConverse:
		return true
	default:
		return false
	}
}

// String returns the vendor tag.
func (v Vendor) String() string {
	if v == VendorUnknown {
		return "unknown"
	}
	return string(v)
}
