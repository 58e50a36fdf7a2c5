package locations

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
)

type LocationRepository struct {
	Repo *repository.Repository
}

func NewLocationRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{Repo: r}
}

func (r *LocationRepository) GetLocations(activeOnly bool) ([]models.Location, error) {
	query := r.Repo.GoquDBWrapper.
		Select("id", "code", "name", "active", "responsible_person_id", "details").
		From("locations").
		Order(goqu.I("code").Asc())

	if activeOnly {
		query = query.Where(goqu.Ex{"active": true})
	}

	var locations []models.Location
	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return locations, nil
}

func (r *LocationRepository) GetLocation(locationID int) (*models.Location, error) {
	var location models.Location

	query := r.Repo.GoquDBWrapper.
		Select("id", "code", "name", "active", "responsible_person_id", "details").
		From("locations").
		Where(goqu.Ex{"id": locationID})

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "location", ID: locationID}
	}

	return &location, nil
}

func (r *LocationRepository) InsertLocation(req LocationRequest) (int, error) {
	query := r.Repo.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"code":                  req.Code,
			"name":                  req.Name,
			"active":                true,
			"responsible_person_id": req.ResponsiblePersonID,
			"details":               req.Details,
		}).
		Returning("id")

	var locationID int
	if _, err := query.Executor().ScanVal(&locationID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, apperrors.WrapDBError(fmt.Sprintf("location code %s", req.Code), string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert location: %w", err)
	}

	return locationID, nil
}

func (r *LocationRepository) DeactivateLocation(locationID int) error {
	query := r.Repo.GoquDBWrapper.Update("locations").
		Set(goqu.Record{"active": false}).
		Where(goqu.Ex{"id": locationID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to deactivate location %d: %w", locationID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "location", ID: locationID}
	}

	return nil
}
