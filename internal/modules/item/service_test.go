package item

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

// Mock repositories
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	if item != nil {
		item.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) SearchAvailable(ctx context.Context, text string) ([]domain.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
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

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, itemID, bookerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindLastByItem(ctx context.Context, itemID int64, before time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindNextByItem(ctx context.Context, itemID int64, after time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, itemID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	if comment != nil {
		comment.ID = 777
	}
	return args.Error(0)
}

func (m *MockCommentRepository) FindByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemRequest), args.Error(1)
}

func newTestService() (*Service, *MockItemRepository, *MockUserRepository, *MockBookingRepository, *MockCommentRepository) {
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockBookings := new(MockBookingRepository)
	mockComments := new(MockCommentRepository)
	mockRequests := new(MockRequestRepository)
	svc := NewService(mockItems, mockUsers, mockBookings, mockComments, mockRequests, zap.NewNop())
	return svc, mockItems, mockUsers, mockBookings, mockComments
}

var (
	testOwner  = domain.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	testRenter = domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	testItem   = domain.Item{ID: 10, Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: 1}
)

func boolPtr(b bool) *bool { return &b }

func TestCreateItem_Success(t *testing.T) {
	service, mockItems, mockUsers, _, _ := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&testOwner, nil)
	mockItems.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), 1, CreateItemRequest{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Drill", resp.Name)
	assert.True(t, resp.Available)
}

func TestCreateItem_OwnerNotFound(t *testing.T) {
	service, mockItems, mockUsers, _, _ := newTestService()

	mockUsers.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Create(context.Background(), 77, CreateItemRequest{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   boolPtr(true),
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
	mockItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateItem_MissingFields(t *testing.T) {
	service, _, mockUsers, _, _ := newTestService()

	_, err := service.Create(context.Background(), 1, CreateItemRequest{Name: "Drill"})

	assert.ErrorIs(t, err, ErrInvalidItem)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateItem_NotOwner(t *testing.T) {
	service, mockItems, _, _, _ := newTestService()

	item := testItem
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)

	name := "Hammer"
	_, err := service.Update(context.Background(), 2, 10, UpdateItemRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotOwner)
	mockItems.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateItem_PartialFields(t *testing.T) {
	service, mockItems, _, _, _ := newTestService()

	item := testItem
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)
	mockItems.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Update(context.Background(), 1, 10, UpdateItemRequest{Available: boolPtr(false)})

	assert.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "Drill", resp.Name)
}

func TestGetItem_OwnerSeesBookingMarkers(t *testing.T) {
	service, mockItems, _, mockBookings, mockComments := newTestService()

	last := &domain.Booking{ID: 3, ItemID: 10, BookerID: 2, Start: time.Now().AddDate(0, 0, -5), End: time.Now().AddDate(0, 0, -2)}
	next := &domain.Booking{ID: 4, ItemID: 10, BookerID: 2, Start: time.Now().AddDate(0, 0, 2), End: time.Now().AddDate(0, 0, 4)}

	item := testItem
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)
	mockBookings.On("FindLastByItem", mock.Anything, int64(10), mock.Anything).Return(last, nil)
	mockBookings.On("FindNextByItem", mock.Anything, int64(10), mock.Anything).Return(next, nil)
	mockComments.On("FindByItem", mock.Anything, int64(10)).Return([]domain.Comment{}, nil)

	details, err := service.GetByID(context.Background(), 10, 1)

	assert.NoError(t, err)
	assert.NotNil(t, details.LastBooking)
	assert.NotNil(t, details.NextBooking)
	assert.Equal(t, int64(3), details.LastBooking.ID)
	assert.Equal(t, int64(4), details.NextBooking.ID)
}

func TestGetItem_NonOwnerGetsNoMarkers(t *testing.T) {
	service, mockItems, _, mockBookings, mockComments := newTestService()

	item := testItem
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)
	mockComments.On("FindByItem", mock.Anything, int64(10)).Return([]domain.Comment{}, nil)

	details, err := service.GetByID(context.Background(), 10, 2)

	assert.NoError(t, err)
	assert.Nil(t, details.LastBooking)
	assert.Nil(t, details.NextBooking)
	mockBookings.AssertNotCalled(t, "FindLastByItem", mock.Anything, mock.Anything, mock.Anything)
	mockBookings.AssertNotCalled(t, "FindNextByItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetItem_CommentsCarryAuthorNames(t *testing.T) {
	service, mockItems, mockUsers, _, mockComments := newTestService()

	item := testItem
	comments := []domain.Comment{
		{ID: 1, ItemID: 10, AuthorID: 2, Text: "Works great", Created: time.Now()},
	}
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)
	mockComments.On("FindByItem", mock.Anything, int64(10)).Return(comments, nil)
	mockUsers.On("ListByIDs", mock.Anything, []int64{2}).Return([]domain.User{testRenter}, nil)

	details, err := service.GetByID(context.Background(), 10, 2)

	assert.NoError(t, err)
	assert.Len(t, details.Comments, 1)
	assert.Equal(t, "Bob", details.Comments[0].AuthorName)
}

func TestSearch_BlankTextMatchesNothing(t *testing.T) {
	service, mockItems, _, _, _ := newTestService()

	items, err := service.Search(context.Background(), "   ")

	assert.NoError(t, err)
	assert.Empty(t, items)
	mockItems.AssertNotCalled(t, "SearchAvailable", mock.Anything, mock.Anything)
}

func TestSearch_DelegatesToRepository(t *testing.T) {
	service, mockItems, _, _, _ := newTestService()

	mockItems.On("SearchAvailable", mock.Anything, "drill").Return([]domain.Item{testItem}, nil)

	items, err := service.Search(context.Background(), "drill")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)
}

// --- comment eligibility ---

func commentSetup(mockItems *MockItemRepository, mockUsers *MockUserRepository) {
	item := testItem
	mockUsers.On("GetByID", mock.Anything, int64(2)).Return(&testRenter, nil)
	mockItems.On("GetByID", mock.Anything, int64(10)).Return(&item, nil)
}

func pastBooking(status domain.BookingStatus, startDaysAgo, endDaysAgo int) domain.Booking {
	now := time.Now()
	return domain.Booking{
		ID:       5,
		ItemID:   10,
		BookerID: 2,
		Start:    now.AddDate(0, 0, -startDaysAgo),
		End:      now.AddDate(0, 0, -endDaysAgo),
		Status:   status,
	}
}

func TestCreateComment_AfterCompletedRental(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, mockComments := newTestService()
	commentSetup(mockItems, mockUsers)

	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{pastBooking(domain.BookingApproved, 5, 2)}, nil)
	mockComments.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "Works great"})

	assert.NoError(t, err)
	assert.Equal(t, "Works great", resp.Text)
	assert.Equal(t, "Bob", resp.AuthorName)
}

// Approval status is not part of the eligibility check: a rejected booking
// whose dates have elapsed still unlocks commenting.
func TestCreateComment_RejectedButElapsedIsEligible(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, mockComments := newTestService()
	commentSetup(mockItems, mockUsers)

	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{pastBooking(domain.BookingRejected, 5, 2)}, nil)
	mockComments.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "ok"})
	assert.NoError(t, err)
}

func TestCreateComment_SingleDayRentalIneligible(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, mockComments := newTestService()
	commentSetup(mockItems, mockUsers)

	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{pastBooking(domain.BookingApproved, 3, 3)}, nil)

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "ok"})

	assert.ErrorIs(t, err, ErrNoCompletedRental)
	mockComments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_RentalEndsTodayIneligible(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, _ := newTestService()
	commentSetup(mockItems, mockUsers)

	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{pastBooking(domain.BookingApproved, 3, 0)}, nil)

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "ok"})
	assert.ErrorIs(t, err, ErrNoCompletedRental)
}

func TestCreateComment_FutureBookingIneligible(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, _ := newTestService()
	commentSetup(mockItems, mockUsers)

	now := time.Now()
	future := domain.Booking{
		ID: 6, ItemID: 10, BookerID: 2,
		Start:  now.AddDate(0, 0, 2),
		End:    now.AddDate(0, 0, 4),
		Status: domain.BookingApproved,
	}
	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{future}, nil)

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "ok"})
	assert.ErrorIs(t, err, ErrNoCompletedRental)
}

func TestCreateComment_NoBookingsAtAll(t *testing.T) {
	service, mockItems, mockUsers, mockBookings, _ := newTestService()
	commentSetup(mockItems, mockUsers)

	mockBookings.On("FindByItemAndBooker", mock.Anything, int64(10), int64(2)).
		Return([]domain.Booking{}, nil)

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "ok"})
	assert.ErrorIs(t, err, ErrNoCompletedRental)
}

func TestCreateComment_BlankText(t *testing.T) {
	service, _, mockUsers, _, _ := newTestService()

	_, err := service.CreateComment(context.Background(), 2, 10, CreateCommentRequest{Text: "  "})

	assert.ErrorIs(t, err, ErrEmptyComment)
	mockUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
