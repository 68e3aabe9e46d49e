package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccountSnapshot is an account's starting balance as of a reference
// date, independent of movements. Read-only input owned by the account
// registry.
type BankAccountSnapshot struct {
	ID             string
	InitialBalance decimal.Decimal
	EffectiveFrom  time.Time
}

// FilterAccounts restricts snapshots and movements to the selected accounts.
// An empty selection means "all accounts" and passes everything through.
// With a non-empty selection, movements without an account attribution are
// dropped: they cannot be credited to any selected account.
func FilterAccounts(snapshots []BankAccountSnapshot, movements []MovementRecord, selectedIDs []string) ([]BankAccountSnapshot, []MovementRecord) {
	if len(selectedIDs) == 0 {
		return snapshots, movements
	}

	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	keptSnapshots := make([]BankAccountSnapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if _, ok := selected[snapshot.ID]; ok {
			keptSnapshots = append(keptSnapshots, snapshot)
		}
	}

	keptMovements := make([]MovementRecord, 0, len(movements))
	for _, movement := range movements {
		if movement.BankAccountID == "" {
			continue
		}
		if _, ok := selected[movement.BankAccountID]; ok {
			keptMovements = append(keptMovements, movement)
		}
	}
	return keptSnapshots, keptMovements
}
