package cashflow

import "testing"

func TestFilterAccounts_EmptySelectionPassesThrough(t *testing.T) {
	snapshots := []BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: dec("100")},
		{ID: "acc-2", InitialBalance: dec("200")},
	}
	movements := []MovementRecord{
		{Amount: dec("10"), Direction: DirectionInflow, Status: StatusRealized, EffectiveDate: day("2024-01-01"), BankAccountID: ""},
		{Amount: dec("20"), Direction: DirectionOutflow, Status: StatusPending, EffectiveDate: day("2024-01-02"), BankAccountID: "acc-2"},
	}

	gotSnapshots, gotMovements := FilterAccounts(snapshots, movements, nil)
	if len(gotSnapshots) != 2 || len(gotMovements) != 2 {
		t.Fatalf("expected pass-through, got %d snapshots and %d movements", len(gotSnapshots), len(gotMovements))
	}
}

func TestFilterAccounts_Selection(t *testing.T) {
	snapshots := []BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: dec("100")},
		{ID: "acc-2", InitialBalance: dec("200")},
		{ID: "acc-3", InitialBalance: dec("300")},
	}
	movements := []MovementRecord{
		{Amount: dec("10"), Direction: DirectionInflow, Status: StatusRealized, EffectiveDate: day("2024-01-01"), BankAccountID: "acc-1"},
		{Amount: dec("20"), Direction: DirectionInflow, Status: StatusRealized, EffectiveDate: day("2024-01-01"), BankAccountID: "acc-2"},
		{Amount: dec("30"), Direction: DirectionInflow, Status: StatusRealized, EffectiveDate: day("2024-01-01"), BankAccountID: ""},
	}

	gotSnapshots, gotMovements := FilterAccounts(snapshots, movements, []string{"acc-1", "acc-3"})
	if len(gotSnapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(gotSnapshots))
	}
	for _, snapshot := range gotSnapshots {
		if snapshot.ID != "acc-1" && snapshot.ID != "acc-3" {
			t.Fatalf("unexpected snapshot %s", snapshot.ID)
		}
	}
	if len(gotMovements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(gotMovements))
	}
	if gotMovements[0].BankAccountID != "acc-1" {
		t.Fatalf("expected acc-1 movement, got %s", gotMovements[0].BankAccountID)
	}
}

func TestFilterAccounts_UnattributedDroppedOnlyWhenFilterActive(t *testing.T) {
	movements := []MovementRecord{
		{Amount: dec("30"), Direction: DirectionInflow, Status: StatusRealized, EffectiveDate: day("2024-01-01"), BankAccountID: ""},
	}

	_, kept := FilterAccounts(nil, movements, nil)
	if len(kept) != 1 {
		t.Fatalf("expected unattributed movement kept without filter, got %d", len(kept))
	}
	_, dropped := FilterAccounts(nil, movements, []string{"acc-1"})
	if len(dropped) != 0 {
		t.Fatalf("expected unattributed movement dropped with filter, got %d", len(dropped))
	}
}
