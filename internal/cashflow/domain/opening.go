package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance folds account initial balances and all realized pre-period
// movements into the balance the period starts with. Only movements with
// StatusRealized and an effective date strictly before periodStart count;
// anything on or after periodStart belongs to the daily ledger, and pending
// or overdue movements never touch the realized balance.
func OpeningBalance(snapshots []BankAccountSnapshot, movements []MovementRecord, periodStart time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, snapshot := range snapshots {
		balance = balance.Add(snapshot.InitialBalance)
	}

	start := DayStart(periodStart)
	for _, movement := range movements {
		if movement.Status != StatusRealized {
			continue
		}
		if !DayStart(movement.EffectiveDate).Before(start) {
			continue
		}
		switch movement.Direction {
		case DirectionInflow:
			balance = balance.Add(movement.Amount)
		case DirectionOutflow:
			balance = balance.Sub(movement.Amount)
		}
	}
	return balance
}
