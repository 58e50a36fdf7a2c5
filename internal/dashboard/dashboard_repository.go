package dashboard

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
)

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// Summary is the aggregate view served on the dashboard endpoint.
type Summary struct {
	AssetsByStatus          []StatusCount `json:"assets_by_status"`
	MovementsByStatus       []StatusCount `json:"movements_by_status"`
	OverdueMovements        int           `json:"overdue_movements"`
	PendingAcknowledgements int           `json:"pending_acknowledgements"`
	ActiveLocations         int           `json:"active_locations"`
}

type DashboardRepository struct {
	Repo *repository.Repository
}

func NewDashboardRepository(r *repository.Repository) *DashboardRepository {
	return &DashboardRepository{Repo: r}
}

func (r *DashboardRepository) GetSummary(now time.Time) (*Summary, error) {
	assetCounts, err := r.countByStatus("assets")
	if err != nil {
		return nil, err
	}

	movementCounts, err := r.countByStatus("movements")
	if err != nil {
		return nil, err
	}

	overdue, err := r.countOverdueMovements(now)
	if err != nil {
		return nil, err
	}

	pendingAcks, err := r.countPendingAcknowledgements()
	if err != nil {
		return nil, err
	}

	activeLocations, err := r.countActiveLocations()
	if err != nil {
		return nil, err
	}

	return &Summary{
		AssetsByStatus:          assetCounts,
		MovementsByStatus:       movementCounts,
		OverdueMovements:        overdue,
		PendingAcknowledgements: pendingAcks,
		ActiveLocations:         activeLocations,
	}, nil
}

func (r *DashboardRepository) countByStatus(table string) ([]StatusCount, error) {
	query := r.Repo.GoquDBWrapper.
		Select(goqu.I("status"), goqu.COUNT("id").As("count")).
		From(table).
		GroupBy(goqu.I("status")).
		Order(goqu.I("status").Asc())

	var counts []StatusCount
	if err := query.Executor().ScanStructs(&counts); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return counts, nil
}

// countOverdueMovements counts open movements past their expected arrival.
func (r *DashboardRepository) countOverdueMovements(now time.Time) (int, error) {
	sql, args, err := r.Repo.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("movements").
		Where(
			goqu.C("expected_arrival").IsNotNull(),
			goqu.C("expected_arrival").Lt(now),
			goqu.C("status").In(string(metadata.StatusPending), string(metadata.StatusInTransit)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.Repo.DB.QueryRow(sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return count, nil
}

// countPendingAcknowledgements counts delivered movements still waiting for
// the receiving side to confirm.
func (r *DashboardRepository) countPendingAcknowledgements() (int, error) {
	sql, args, err := r.Repo.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("movements").
		Where(goqu.Ex{"status": metadata.StatusDelivered}).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.Repo.DB.QueryRow(sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return count, nil
}

func (r *DashboardRepository) countActiveLocations() (int, error) {
	sql, args, err := r.Repo.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("locations").
		Where(goqu.Ex{"active": true}).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.Repo.DB.QueryRow(sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return count, nil
}
