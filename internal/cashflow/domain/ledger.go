package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLedgerEntry is one row of the daily ledger, covering exactly one
// calendar date of the requested range.
// Invariants:
// 1) OpeningBalance equals the previous day's ClosingRealizedBalance
//    (the period opening balance on the first day).
// 2) ClosingRealizedBalance = OpeningBalance + RealizedInflow - RealizedOutflow.
// 3) ClosingProjectedBalance = ClosingRealizedBalance + ProjectedInflow - ProjectedOutflow.
//    Projections are evaluated fresh per day and never carry forward.
type DailyLedgerEntry struct {
	Date                    time.Time       `json:"date"`
	OpeningBalance          decimal.Decimal `json:"opening_balance"`
	RealizedInflow          decimal.Decimal `json:"realized_inflow"`
	RealizedOutflow         decimal.Decimal `json:"realized_outflow"`
	ProjectedInflow         decimal.Decimal `json:"projected_inflow"`
	ProjectedOutflow        decimal.Decimal `json:"projected_outflow"`
	ClosingRealizedBalance  decimal.Decimal `json:"closing_realized_balance"`
	ClosingProjectedBalance decimal.Decimal `json:"closing_projected_balance"`
}

// Totals sums the four flow fields over the whole period.
type Totals struct {
	RealizedInflow   decimal.Decimal `json:"realized_inflow"`
	RealizedOutflow  decimal.Decimal `json:"realized_outflow"`
	ProjectedInflow  decimal.Decimal `json:"projected_inflow"`
	ProjectedOutflow decimal.Decimal `json:"projected_outflow"`
}

// Result is the complete cash-flow view for a period.
type Result struct {
	OpeningBalance          decimal.Decimal    `json:"opening_balance"`
	ClosingRealizedBalance  decimal.Decimal    `json:"closing_realized_balance"`
	ClosingProjectedBalance decimal.Decimal    `json:"closing_projected_balance"`
	Days                    []DailyLedgerEntry `json:"days"`
	Totals                  Totals             `json:"totals"`
}

// BuildDailyLedger walks every calendar day from periodStart to periodEnd
// inclusive, applying that day's movements and carrying the realized balance
// forward. Realized movements feed the realized flows. Pending movements
// whose effective date has not passed the observation date feed the
// projected flows. Overdue movements, and pending movements already past
// due at observation time, are lapsed obligations and contribute nothing.
// Movements outside the range are ignored here; realized pre-period ones
// were already folded into the opening balance.
func BuildDailyLedger(movements []MovementRecord, periodStart, periodEnd time.Time, openingBalance decimal.Decimal, today time.Time) ([]DailyLedgerEntry, error) {
	start := DayStart(periodStart)
	end := DayStart(periodEnd)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	observation := DayStart(today)

	buckets := make(map[string][]MovementRecord)
	for _, movement := range movements {
		day := DayStart(movement.EffectiveDate)
		if day.Before(start) || day.After(end) {
			continue
		}
		key := DayKey(day)
		buckets[key] = append(buckets[key], movement)
	}

	entries := make([]DailyLedgerEntry, 0, DaysInclusive(start, end))
	running := openingBalance
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := DailyLedgerEntry{
			Date:             day,
			OpeningBalance:   running,
			RealizedInflow:   decimal.Zero,
			RealizedOutflow:  decimal.Zero,
			ProjectedInflow:  decimal.Zero,
			ProjectedOutflow: decimal.Zero,
		}

		for _, movement := range buckets[DayKey(day)] {
			switch movement.Status {
			case StatusRealized:
				if movement.Direction == DirectionInflow {
					entry.RealizedInflow = entry.RealizedInflow.Add(movement.Amount)
				} else {
					entry.RealizedOutflow = entry.RealizedOutflow.Add(movement.Amount)
				}
			case StatusPending:
				if DayStart(movement.EffectiveDate).Before(observation) {
					// Lapsed without settlement; no longer money to count on.
					continue
				}
				if movement.Direction == DirectionInflow {
					entry.ProjectedInflow = entry.ProjectedInflow.Add(movement.Amount)
				} else {
					entry.ProjectedOutflow = entry.ProjectedOutflow.Add(movement.Amount)
				}
			case StatusOverdue:
				continue
			}
		}

		entry.ClosingRealizedBalance = entry.OpeningBalance.Add(entry.RealizedInflow).Sub(entry.RealizedOutflow)
		entry.ClosingProjectedBalance = entry.ClosingRealizedBalance.Add(entry.ProjectedInflow).Sub(entry.ProjectedOutflow)
		running = entry.ClosingRealizedBalance
		entries = append(entries, entry)
	}
	return entries, nil
}

// Aggregate sums per-day figures into period totals and final balances.
// With an empty ledger both closing balances equal the opening balance.
func Aggregate(openingBalance decimal.Decimal, days []DailyLedgerEntry) Result {
	result := Result{
		OpeningBalance:          openingBalance,
		ClosingRealizedBalance:  openingBalance,
		ClosingProjectedBalance: openingBalance,
		Days:                    days,
		Totals: Totals{
			RealizedInflow:   decimal.Zero,
			RealizedOutflow:  decimal.Zero,
			ProjectedInflow:  decimal.Zero,
			ProjectedOutflow: decimal.Zero,
		},
	}
	for _, day := range days {
		result.Totals.RealizedInflow = result.Totals.RealizedInflow.Add(day.RealizedInflow)
		result.Totals.RealizedOutflow = result.Totals.RealizedOutflow.Add(day.RealizedOutflow)
		result.Totals.ProjectedInflow = result.Totals.ProjectedInflow.Add(day.ProjectedInflow)
		result.Totals.ProjectedOutflow = result.Totals.ProjectedOutflow.Add(day.ProjectedOutflow)
	}
	if len(days) > 0 {
		last := days[len(days)-1]
		result.ClosingRealizedBalance = last.ClosingRealizedBalance
		result.ClosingProjectedBalance = last.ClosingProjectedBalance
	}
	return result
}

// Input carries everything one computation needs. The engine holds no state
// between calls and performs no I/O; it is safe for concurrent callers.
type Input struct {
	Snapshots   []BankAccountSnapshot
	Movements   []MovementRecord
	AccountIDs  []string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Today       time.Time
}

// Compute runs the full pipeline over already-classified movements: account
// filter, opening balance, daily ledger, aggregation. The range is validated
// before any ledger work; end before start is ErrInvalidRange.
func Compute(in Input) (*Result, error) {
	start := DayStart(in.PeriodStart)
	end := DayStart(in.PeriodEnd)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	snapshots, movements := FilterAccounts(in.Snapshots, in.Movements, in.AccountIDs)
	opening := OpeningBalance(snapshots, movements, start)
	days, err := BuildDailyLedger(movements, start, end, opening, in.Today)
	if err != nil {
		return nil, err
	}
	result := Aggregate(opening, days)
	return &result, nil
}
