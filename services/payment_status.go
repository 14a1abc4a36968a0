package services

import (
	"strings"

	"hotel-admin/models"
)

// Stored spellings used by older schemas.
var paymentFallbacks = map[string]string{
	models.PaymentPartial:  "Paid",
	models.PaymentComplete: "Completed",
}

// PaymentStatusTable maps canonical payment statuses onto the values the bookings table
// accepts. It is built once at startup and is read-only afterwards.
type PaymentStatusTable struct {
	legal    []string
	toStored map[string]string
	toCanon  map[string]string
}

// NewPaymentStatusTable builds the table for the given legal values. An empty list means
// the schema accepts the canonical vocabulary.
func NewPaymentStatusTable(legal []string) *PaymentStatusTable {
	cleaned := make([]string, 0, len(legal))
	for _, v := range legal {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, models.CanonicalPaymentStatuses...)
	}

	t := &PaymentStatusTable{
		legal:    cleaned,
		toStored: make(map[string]string, len(models.CanonicalPaymentStatuses)),
		toCanon:  make(map[string]string, len(cleaned)),
	}

	for _, canon := range models.CanonicalPaymentStatuses {
		stored := t.resolve(canon)
		t.toStored[canon] = stored
		if _, seen := t.toCanon[strings.ToLower(stored)]; !seen {
			t.toCanon[strings.ToLower(stored)] = canon
		}
	}
	return t
}

func (t *PaymentStatusTable) find(value string) (string, bool) {
	for _, v := range t.legal {
		if strings.EqualFold(v, value) {
			return v, true
		}
	}
	return "", false
}

func (t *PaymentStatusTable) resolve(canon string) string {
	if v, ok := t.find(canon); ok {
		return v
	}
	if alt, ok := paymentFallbacks[canon]; ok {
		if v, ok := t.find(alt); ok {
			return v
		}
	}
	if v, ok := t.find(models.PaymentPending); ok {
		return v
	}
	return t.legal[0]
}

// Storable returns the value to write for a canonical payment status.
func (t *PaymentStatusTable) Storable(canonical string) string {
	if v, ok := t.toStored[canonical]; ok {
		return v
	}
	if v, ok := t.find(canonical); ok {
		return v
	}
	return t.resolve(canonical)
}

// Canonical maps a stored value back to the canonical vocabulary. Unknown values are
// returned unchanged.
func (t *PaymentStatusTable) Canonical(stored string) string {
	if v, ok := t.toCanon[strings.ToLower(strings.TrimSpace(stored))]; ok {
		return v
	}
	return stored
}

func (t *PaymentStatusTable) Legal() []string {
	out := make([]string, len(t.legal))
	copy(out, t.legal)
	return out
}

func paymentRank(canonical string) int {
	for i, v := range models.CanonicalPaymentStatuses {
		if v == canonical {
			return i
		}
	}
	return -1
}
