package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shareit/internal/domain"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, r *domain.ItemRequest) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

func (m *MockRequestRepository) ListAll(ctx context.Context, excludeRequesterID int64) ([]domain.ItemRequest, error) {
	args := m.Called(ctx, excludeRequesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemRequest), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByRequests(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func newTestService() (*Service, *MockRequestRepository, *MockUserRepository, *MockItemRepository) {
	mockRequests := new(MockRequestRepository)
	mockUsers := new(MockUserRepository)
	mockItems := new(MockItemRepository)
	return NewService(mockRequests, mockUsers, mockItems, zap.NewNop()), mockRequests, mockUsers, mockItems
}

var testRequester = domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"}

func TestCreateRequest_Success(t *testing.T) {
	service, mockRequests, mockUsers, _ := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&testRequester, nil)
	mockRequests.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), 2, CreateRequestRequest{Description: "Need a ladder"})

	assert.NoError(t, err)
	assert.Equal(t, "Need a ladder", resp.Description)
	assert.Empty(t, resp.Items)
}

func TestCreateRequest_BlankDescription(t *testing.T) {
	service, mockRequests, _, _ := newTestService()

	_, err := service.Create(context.Background(), 2, CreateRequestRequest{Description: "  "})

	assert.ErrorIs(t, err, ErrEmptyRequest)
	mockRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRequest_UnknownUser(t *testing.T) {
	service, _, mockUsers, _ := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Create(context.Background(), 77, CreateRequestRequest{Description: "Need a ladder"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListOwn_AttachesOfferedItems(t *testing.T) {
	service, mockRequests, mockUsers, mockItems := newTestService()

	rid := int64(5)
	requests := []domain.ItemRequest{
		{ID: 5, Description: "Need a ladder", RequesterID: 2, Created: time.Now()},
	}
	offered := []domain.Item{
		{ID: 10, Name: "Ladder", Description: "3m ladder", Available: true, OwnerID: 1, RequestID: &rid},
	}

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&testRequester, nil)
	mockRequests.On("ListByRequester", mock.Anything, int64(2)).Return(requests, nil)
	mockItems.On("ListByRequests", mock.Anything, []int64{5}).Return(offered, nil)

	out, err := service.ListOwn(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Items, 1)
	assert.Equal(t, "Ladder", out[0].Items[0].Name)
}

func TestListAll_ExcludesOwnRequests(t *testing.T) {
	service, mockRequests, mockUsers, mockItems := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&testRequester, nil)
	mockRequests.On("ListAll", mock.Anything, int64(2)).Return([]domain.ItemRequest{}, nil)

	out, err := service.ListAll(context.Background(), 2)

	assert.NoError(t, err)
	assert.Empty(t, out)
	mockRequests.AssertCalled(t, "ListAll", mock.Anything, int64(2))
	mockItems.AssertNotCalled(t, "ListByRequests", mock.Anything, mock.Anything)
}

func TestGetRequest_NotFound(t *testing.T) {
	service, mockRequests, mockUsers, _ := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&testRequester, nil)
	mockRequests.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByID(context.Background(), 2, 404)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
