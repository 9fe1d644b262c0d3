package constants

// ReportStatus is the canonical verdict for a reconciliation report.
type ReportStatus string

// Stable values (these exact strings go out on the wire).
const (
	StatusApproved    ReportStatus = "APPROVED"     // no discrepancies found
	StatusNeedsReview ReportStatus = "NEEDS_REVIEW" // at least one issue for a human
)

// Matching thresholds and tolerances.
const (
	// NameMatchThreshold is the minimum token-sort similarity (0..100)
	// for vendor and customer names to count as a match.
	NameMatchThreshold = 80

	// ItemMatchThreshold is the minimum partial-match similarity (0..100)
	// for a line-item description to count as found.
	ItemMatchThreshold = 65

	// AmountTolerance is the absolute tolerance when comparing money
	// amounts (document totals and unit prices).
	AmountTolerance = 0.01
)

// NAString is the sentinel for string fields the extractor could not find.
const NAString = "N/A"
