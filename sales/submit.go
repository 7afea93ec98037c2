package sales

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Submission carries everything one checkout click provides. The amount
// and term inputs stay raw strings so parse failures surface as the
// same user-facing rejections the form reports.
type Submission struct {
	StoreID          uint
	ClientID         *uint
	SaleType         SaleType
	Items            []LineItem
	AmountPaidInput  string // partial only
	PaymentTermInput string // credit/partial only
	PaymentMethod    string
}

// Resolve runs the pre-submission checks in order and, when all pass,
// returns the invoice totals and payment plan to persist. The order is
// fixed: empty invoice, client, partial amount, payment term, store.
// The first failing check aborts; later checks are not evaluated.
func (s *Submission) Resolve(now time.Time) (Totals, PaymentPlan, error) {
	if s.SaleType != Cash && s.SaleType != Credit && s.SaleType != Partial {
		return Totals{}, PaymentPlan{}, ErrInvalidSaleType
	}
	if len(s.Items) == 0 {
		return Totals{}, PaymentPlan{}, ErrEmptyInvoice
	}

	onTerms := s.SaleType == Credit || s.SaleType == Partial
	if onTerms && s.ClientID == nil {
		return Totals{}, PaymentPlan{}, ErrClientRequired
	}

	totals := ComputeTotals(s.Items)

	amountPaid := decimal.Zero
	if s.SaleType == Partial {
		raw := strings.TrimSpace(s.AmountPaidInput)
		if raw == "" {
			return Totals{}, PaymentPlan{}, ErrInvalidPartialAmount
		}
		parsed, err := decimal.NewFromString(raw)
		// An amount equal to or above the total is rejected too: that is
		// a cash sale, not a partial one.
		if err != nil || !parsed.IsPositive() || parsed.GreaterThanOrEqual(totals.Total) {
			return Totals{}, PaymentPlan{}, ErrInvalidPartialAmount
		}
		amountPaid = parsed
	}

	termDays := 0
	if onTerms {
		n, err := strconv.Atoi(strings.TrimSpace(s.PaymentTermInput))
		if err != nil || n < MinPaymentTermDays || n > MaxPaymentTermDays {
			return Totals{}, PaymentPlan{}, ErrInvalidPaymentTerm
		}
		termDays = n
	}

	if s.StoreID == 0 {
		return Totals{}, PaymentPlan{}, ErrNoStoreSelected
	}

	plan, err := ResolvePaymentPlan(s.SaleType, totals.Total, amountPaid, termDays, now)
	if err != nil {
		return Totals{}, PaymentPlan{}, err
	}
	return totals, plan, nil
}
