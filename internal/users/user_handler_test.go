package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wongivan852/asset-movement-tracking-system/pkg/auditlog"
	apperrors "github.com/wongivan852/asset-movement-tracking-system/pkg/errors"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(req CreateUserRequest, hashedPassword []byte) (int, error) {
	args := m.Called(req, hashedPassword)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(id int, changes *UserChanges) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type noopRecorder struct{}

func (noopRecorder) Persist(entry models.ActivityLog, data interface{}) error { return nil }
func (noopRecorder) PersistTx(tx *goqu.TxDatabase, entry models.ActivityLog, data interface{}) error {
	return nil
}

func newTestHandler(repo UserRepository) *UsersHandler {
	return NewHandler(repo, auditlog.NewAuditLog(noopRecorder{}, zap.NewNop()))
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", "1")
	c.Set("role", "admin")
	c.Set("username", "admin")
	return c, w
}

func TestRegisterUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		payload        CreateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Fullname: "Test User",
				Role:     roles.Operator,
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).Return(5, nil)
				mockRepo.On("GetUser", 5).Return(&models.User{
					ID:       5,
					Username: "testuser",
					Role:     roles.Operator,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "unknown role",
			payload: CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Fullname: "Test User",
				Role:     roles.Role("moderator"),
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			payload: CreateUserRequest{
				Username: "testuser",
				Password: "password123",
				Fullname: "Test User",
				Role:     roles.Operator,
			},
			setupMock: func() {
				mockRepo.On("PersistUser", mock.Anything, mock.Anything).Return(0, apperrors.WrapDBError("username testuser", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(body))

			handler.RegisterUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		userID         string
		payload        UpdateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name:   "successful role change",
			userID: "2",
			payload: UpdateUserRequest{
				Role: rolePtr(roles.Approver),
			},
			setupMock: func() {
				mockRepo.On("GetUser", 2).Return(&models.User{
					ID:       2,
					Username: "testuser",
					Role:     roles.Operator,
				}, nil).Once()

				mockRepo.On("UpdateUser", 2, mock.MatchedBy(func(changes *UserChanges) bool {
					return changes.Role != nil && *changes.Role == string(roles.Approver)
				})).Return(nil)

				mockRepo.On("GetUser", 2).Return(&models.User{
					ID:       2,
					Username: "testuser",
					Role:     roles.Approver,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "no changes returns current user",
			userID: "2",
			payload: UpdateUserRequest{
				Role: rolePtr(roles.Operator),
			},
			setupMock: func() {
				mockRepo.On("GetUser", 2).Return(&models.User{
					ID:       2,
					Username: "testuser",
					Role:     roles.Operator,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "password too short",
			userID: "2",
			payload: UpdateUserRequest{
				Password: stringPtr("short"),
			},
			setupMock: func() {
				mockRepo.On("GetUser", 2).Return(&models.User{
					ID:       2,
					Username: "testuser",
					Role:     roles.Operator,
				}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "user not found",
			userID: "999",
			payload: UpdateUserRequest{
				Fullname: stringPtr("Updated Name"),
			},
			setupMock: func() {
				mockRepo.On("GetUser", 999).Return(nil, &apperrors.NotFoundError{Resource: "user", ID: 999})
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("PATCH", "/users/"+tt.userID, bytes.NewBuffer(body))
			c.Params = []gin.Param{{Key: "id", Value: tt.userID}}

			handler.UpdateUser(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := newTestHandler(mockRepo)

	tests := []struct {
		name           string
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful list retrieval",
			setupMock: func() {
				mockRepo.On("GetUsers").Return([]models.User{
					{ID: 1, Username: "user1"},
					{ID: 2, Username: "user2"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.On("GetUsers").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()
			c.Request = httptest.NewRequest("GET", "/users", nil)

			handler.GetUserList(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetUserAccessRules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockRepo := new(MockUserRepository)
	handler := newTestHandler(mockRepo)

	t.Run("user reads own record", func(t *testing.T) {
		mockRepo.ExpectedCalls = nil
		mockRepo.On("GetUser", 1).Return(&models.User{ID: 1, Username: "self", Role: roles.Viewer}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("userID", "1")
		c.Set("role", "viewer")
		c.Request = httptest.NewRequest("GET", "/users/1", nil)
		c.Params = []gin.Param{{Key: "id", Value: "1"}}

		handler.GetUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer may not read other users", func(t *testing.T) {
		mockRepo.ExpectedCalls = nil

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("userID", "1")
		c.Set("role", "viewer")
		c.Request = httptest.NewRequest("GET", "/users/2", nil)
		c.Params = []gin.Param{{Key: "id", Value: "2"}}

		handler.GetUser(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func stringPtr(s string) *string {
	return &s
}

func rolePtr(r roles.Role) *roles.Role {
	return &r
}
