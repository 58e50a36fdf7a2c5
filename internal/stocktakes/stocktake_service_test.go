package stocktakes

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/metadata"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

type MockStockTakeStore struct {
	mock.Mock
}

func (m *MockStockTakeStore) InsertStockTake(req models.StockTakeRequest, conductedBy int) (int, error) {
	args := m.Called(req, conductedBy)
	return args.Int(0), args.Error(1)
}

func (m *MockStockTakeStore) GetStockTake(stockTakeID int) (*models.StockTake, error) {
	args := m.Called(stockTakeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockTake), args.Error(1)
}

func (m *MockStockTakeStore) GetStockTakes(conditions repository.QueryBuilder) ([]models.StockTake, error) {
	args := m.Called(conditions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockTake), args.Error(1)
}

func (m *MockStockTakeStore) GetStockTakeItems(stockTakeID int) ([]models.StockTakeItem, error) {
	args := m.Called(stockTakeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockTakeItem), args.Error(1)
}

func (m *MockStockTakeStore) UpdateStockTakeStatus(stockTakeID int, from, to metadata.StockTakeStatus, completedAt *time.Time) (bool, error) {
	args := m.Called(stockTakeID, from, to, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockTakeStore) UpsertStockTakeItem(stockTakeID int, req models.StockTakeItemRequest) error {
	args := m.Called(stockTakeID, req)
	return args.Error(0)
}

type noopRecorder struct{}

func (noopRecorder) Persist(entry models.ActivityLog, data interface{}) error { return nil }
func (noopRecorder) PersistTx(tx *goqu.TxDatabase, entry models.ActivityLog, data interface{}) error {
	return nil
}

func newTestStockTakeService() (*StockTakeService, *MockStockTakeStore) {
	store := new(MockStockTakeStore)
	svc := NewService(store, auditlog.NewAuditLog(noopRecorder{}, zap.NewNop()))
	return svc, store
}

func stockTakeWithStatus(stockTakeID int, status metadata.StockTakeStatus) *models.StockTake {
	return &models.StockTake{
		ID:          stockTakeID,
		Location:    models.Location{ID: 1, Code: "WH-A"},
		ConductedBy: 3,
		Status:      status,
	}
}

func TestStartStockTake(t *testing.T) {
	t.Run("starts a scheduled stock take", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeScheduled), nil).Once()
		store.On("UpdateStockTakeStatus", 10, metadata.StockTakeScheduled, metadata.StockTakeInProgress, (*time.Time)(nil)).Return(true, nil)
		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeInProgress), nil)

		stockTake, err := svc.StartStockTake(operator, 10)

		assert.NoError(t, err)
		assert.Equal(t, metadata.StockTakeInProgress, stockTake.Status)
	})

	t.Run("may not start twice", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeInProgress), nil)

		_, err := svc.StartStockTake(operator, 10)

		var transitionErr *apperrors.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("viewer may not conduct stock takes", func(t *testing.T) {
		svc, _ := newTestStockTakeService()
		viewer := &models.User{ID: 3, Role: roles.Viewer}

		_, err := svc.StartStockTake(viewer, 10)

		var authErr *apperrors.AuthorizationError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestRecordItemRequiresInProgress(t *testing.T) {
	svc, store := newTestStockTakeService()
	operator := &models.User{ID: 3, Role: roles.Operator}
	found := true

	store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeScheduled), nil)

	_, err := svc.RecordItem(operator, 10, models.StockTakeItemRequest{AssetID: 5, Found: &found})

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	store.AssertNotCalled(t, "UpsertStockTakeItem", mock.Anything, mock.Anything)
}

func TestCompleteStockTake(t *testing.T) {
	t.Run("completes an in_progress stock take", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeInProgress), nil).Once()
		store.On("UpdateStockTakeStatus", 10, metadata.StockTakeInProgress, metadata.StockTakeCompleted, mock.MatchedBy(func(completedAt *time.Time) bool {
			return completedAt != nil
		})).Return(true, nil)
		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeCompleted), nil)

		stockTake, err := svc.CompleteStockTake(operator, 10)

		assert.NoError(t, err)
		assert.Equal(t, metadata.StockTakeCompleted, stockTake.Status)
	})

	t.Run("repeat completion is rejected", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeCompleted), nil)

		_, err := svc.CompleteStockTake(operator, 10)

		var duplicateErr *apperrors.DuplicateOperationError
		assert.ErrorAs(t, err, &duplicateErr)
	})

	t.Run("scheduled stock take may not complete directly", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeScheduled), nil)

		_, err := svc.CompleteStockTake(operator, 10)

		var transitionErr *apperrors.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("lost race surfaces a conflict", func(t *testing.T) {
		svc, store := newTestStockTakeService()
		operator := &models.User{ID: 3, Role: roles.Operator}

		store.On("GetStockTake", 10).Return(stockTakeWithStatus(10, metadata.StockTakeInProgress), nil)
		store.On("UpdateStockTakeStatus", 10, metadata.StockTakeInProgress, metadata.StockTakeCompleted, mock.Anything).Return(false, nil)

		_, err := svc.CompleteStockTake(operator, 10)

		var conflictErr *apperrors.ConcurrencyConflictError
		assert.ErrorAs(t, err, &conflictErr)
	})
}
