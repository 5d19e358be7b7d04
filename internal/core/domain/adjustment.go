package domain

import "github.com/shopspring/decimal"

// AdjustmentType categorizes a manual settlement adjustment.
type AdjustmentType string

const (
	AdjustmentBonus      AdjustmentType = "BONUS"
	AdjustmentPenalty    AdjustmentType = "PENALTY"
	AdjustmentCorrection AdjustmentType = "CORRECTION"
	AdjustmentOther      AdjustmentType = "OTHER"
)

// Adjustment is a manually entered bonus, penalty, correction or other amount
// applied to a settlement. Amount is always non-negative; the type determines
// which side of the computation it lands on.
type Adjustment struct {
	AdjustmentID  string          `json:"adjustmentID"` // Primary Key (e.g., UUID)
	SettlementID  string          `json:"settlementID"` // Set at finalize; empty while the draft is open
	Type          AdjustmentType  `json:"type"`
	Category      string          `json:"category"` // Free-form category; the UI offers a menu per type but any pair is stored
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Justification string          `json:"justification,omitempty"`
	AuditFields
}

// AdjustmentLedger is the ordered, mutable list of adjustments on a draft.
type AdjustmentLedger struct {
	entries []Adjustment
}

// Add appends an entry to the ledger. Validation (non-zero amount, required
// fields) happens at the service boundary before entries reach the ledger.
func (l *AdjustmentLedger) Add(entry Adjustment) {
	l.entries = append(l.entries, entry)
}

// Remove deletes the entry with the given ID. It reports whether an entry was removed.
func (l *AdjustmentLedger) Remove(adjustmentID string) bool {
	for i, e := range l.entries {
		if e.AdjustmentID == adjustmentID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a ledger with its own backing slice.
func (l *AdjustmentLedger) Clone() AdjustmentLedger {
	return AdjustmentLedger{entries: append([]Adjustment(nil), l.entries...)}
}

// Entries returns the adjustments in insertion order.
func (l *AdjustmentLedger) Entries() []Adjustment {
	return l.entries
}

// SumByType returns the total amount over entries of the given type.
func (l *AdjustmentLedger) SumByType(t AdjustmentType) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		if e.Type == t {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}
