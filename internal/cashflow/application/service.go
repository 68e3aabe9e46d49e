package application

import (
	"context"
	"errors"
	"time"

	cashflow "financeiro-cloud/internal/cashflow/domain"
	"financeiro-cloud/internal/observability/metrics"
)

// Query is a cash-flow request as it arrives from the outside: raw date
// strings and an optional account selection. An empty AccountIDs means all
// accounts of the tenant.
type Query struct {
	Start      string
	End        string
	AccountIDs []string
}

// SnapshotReader loads bank account snapshots for a tenant.
type SnapshotReader interface {
	ListSnapshots(ctx context.Context, tenantID string) ([]cashflow.BankAccountSnapshot, error)
}

// MovementSource loads raw receivable and payable rows for a tenant.
// Canceled rows must never be returned.
type MovementSource interface {
	ListReceivables(ctx context.Context, tenantID string) ([]cashflow.SourceRow, error)
	ListPayables(ctx context.Context, tenantID string) ([]cashflow.SourceRow, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FluxoService runs cash-flow computations over the tenant's books.
type FluxoService struct {
	snapshots SnapshotReader
	movements MovementSource
	clock     Clock
}

// NewFluxoService constructs the service.
func NewFluxoService(snapshots SnapshotReader, movements MovementSource, clock Clock) (*FluxoService, error) {
	if snapshots == nil {
		return nil, errors.New("fluxo service: nil snapshot reader")
	}
	if movements == nil {
		return nil, errors.New("fluxo service: nil movement source")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &FluxoService{snapshots: snapshots, movements: movements, clock: clock}, nil
}

// Compute loads the tenant's accounts and movements and builds the daily
// ledger for the requested period. Unparseable period bounds surface
// cashflow.ErrUnparseableDate; an inverted range surfaces
// cashflow.ErrInvalidRange.
func (s *FluxoService) Compute(ctx context.Context, tenantID string, query Query) (*cashflow.Result, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveCashflowCompute(result, time.Since(start))
	}()

	out, err := s.compute(ctx, tenantID, query)
	if err != nil {
		result = metrics.ResultError
	}
	return out, err
}

func (s *FluxoService) compute(ctx context.Context, tenantID string, query Query) (*cashflow.Result, error) {
	if tenantID == "" {
		return nil, errors.New("fluxo service: empty tenant id")
	}

	periodStart, err := cashflow.NormalizeDate(query.Start)
	if err != nil {
		return nil, err
	}
	periodEnd, err := cashflow.NormalizeDate(query.End)
	if err != nil {
		return nil, err
	}
	if periodEnd.Before(periodStart) {
		return nil, cashflow.ErrInvalidRange
	}

	snapshots, err := s.snapshots.ListSnapshots(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	receivables, err := s.movements.ListReceivables(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	payables, err := s.movements.ListPayables(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inflows, err := cashflow.ClassifyAll(receivables, cashflow.DirectionInflow)
	if err != nil {
		return nil, err
	}
	outflows, err := cashflow.ClassifyAll(payables, cashflow.DirectionOutflow)
	if err != nil {
		return nil, err
	}

	movements := make([]cashflow.MovementRecord, 0, len(inflows)+len(outflows))
	movements = append(movements, inflows...)
	movements = append(movements, outflows...)

	return cashflow.Compute(cashflow.Input{
		Snapshots:   snapshots,
		Movements:   movements,
		AccountIDs:  query.AccountIDs,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Today:       cashflow.DayStart(s.clock.Now().UTC()),
	})
}
