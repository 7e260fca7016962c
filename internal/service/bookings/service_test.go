package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
	"github.com/m04kA/ShareIt-BookingService/pkg/pagination"
	"github.com/m04kA/ShareIt-BookingService/pkg/ptr"
)

// Моки зависимостей

type bookingRepoMock struct {
	getByIDFn      func(ctx context.Context, id int64) (*domain.Booking, error)
	listByBookerFn func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error)
	listByOwnerFn  func(ctx context.Context, ownerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error)
	listByItemFn   func(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error)
}

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *bookingRepoMock) ListByBooker(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
	return m.listByBookerFn(ctx, bookerID, filter, page)
}

func (m *bookingRepoMock) ListByOwner(ctx context.Context, ownerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
	return m.listByOwnerFn(ctx, ownerID, filter, page)
}

func (m *bookingRepoMock) ListByItemAndOwner(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error) {
	return m.listByItemFn(ctx, itemID, ownerID)
}

type userClientMock struct {
	getUserFn func(ctx context.Context, userID int64) (*userservice.User, error)
}

func (m *userClientMock) GetUser(ctx context.Context, userID int64) (*userservice.User, error) {
	return m.getUserFn(ctx, userID)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

// booking id=10: booker=1, item=5, owner=2
func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		StartDate:   testNow.Add(24 * time.Hour),
		EndDate:     testNow.Add(48 * time.Hour),
		Status:      domain.StatusWaiting,
		BookerID:    1,
		ItemID:      5,
		ItemOwnerID: 2,
	}
}

func okUserClient() *userClientMock {
	return &userClientMock{
		getUserFn: func(ctx context.Context, userID int64) (*userservice.User, error) {
			return &userservice.User{ID: userID, Name: "user"}, nil
		},
	}
}

func newTestService(repo *bookingRepoMock, userCl *userClientMock) *Service {
	return NewService(repo, userCl, &noopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testNow})
}

// GetByID

func TestGetByID_VisibleToBooker(t *testing.T) {
	repo := &bookingRepoMock{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return testBooking(), nil
		},
	}
	svc := newTestService(repo, okUserClient())

	resp, err := svc.GetByID(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
}

func TestGetByID_VisibleToOwner(t *testing.T) {
	repo := &bookingRepoMock{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return testBooking(), nil
		},
	}
	svc := newTestService(repo, okUserClient())

	resp, err := svc.GetByID(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
}

func TestGetByID_HiddenFromThirdParty(t *testing.T) {
	repo := &bookingRepoMock{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return testBooking(), nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.GetByID(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &bookingRepoMock{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.GetByID(context.Background(), 10, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// ListForBooker

func TestListForBooker_DefaultStateIsAll(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			gotFilter = filter
			return []*domain.Booking{testBooking()}, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	resp, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{UserID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	assert.Nil(t, gotFilter.Status)
	assert.Nil(t, gotFilter.StartBefore)
	assert.Nil(t, gotFilter.EndBefore)
}

func TestListForBooker_PastLowersToEndBound(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{
		UserID: 1,
		State:  ptr.Ptr("PAST"),
	})
	require.NoError(t, err)

	// PAST раскрывается относительно фиксированного "сейчас"
	require.NotNil(t, gotFilter.EndBefore)
	assert.Equal(t, testNow, *gotFilter.EndBefore)
	assert.Nil(t, gotFilter.StartAfter)
}

func TestListForBooker_StatusState(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{
		UserID: 1,
		State:  ptr.Ptr("WAITING"),
	})
	require.NoError(t, err)

	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusWaiting, *gotFilter.Status)
}

func TestListForBooker_UnknownState(t *testing.T) {
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{
		UserID: 1,
		State:  ptr.Ptr("BOGUS"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "BOGUS")
}

func TestListForBooker_UnknownUser(t *testing.T) {
	userCl := &userClientMock{
		getUserFn: func(ctx context.Context, userID int64) (*userservice.User, error) {
			return nil, userservice.ErrUserNotFound
		},
	}
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, userCl)

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListForBooker_PaginationTruncates(t *testing.T) {
	var gotPage *pagination.PageRequest
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			gotPage = page
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{
		UserID: 1,
		From:   ptr.Ptr(int64(3)),
		Size:   ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)

	require.NotNil(t, gotPage)
	assert.Equal(t, int64(2), gotPage.Offset())
	assert.Equal(t, int64(2), gotPage.Limit())
}

func TestListForBooker_InvalidPagination(t *testing.T) {
	repo := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	_, err := svc.ListForBooker(context.Background(), &models.BookerBookingsRequest{
		UserID: 1,
		From:   ptr.Ptr(int64(0)),
		Size:   ptr.Ptr(int64(0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ListForOwner

func TestListForOwner_TypedFilter(t *testing.T) {
	var gotFilter domain.BookingsFilter
	repo := &bookingRepoMock{
		listByOwnerFn: func(ctx context.Context, ownerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			gotFilter = filter
			return []*domain.Booking{testBooking()}, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	state, err := domain.ParseStateFilter("FUTURE")
	require.NoError(t, err)

	resp, err := svc.ListForOwner(context.Background(), &models.OwnerBookingsRequest{
		UserID: 2,
		State:  state,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	require.NotNil(t, gotFilter.StartAfter)
	assert.Equal(t, testNow, *gotFilter.StartAfter)
}

func TestListForOwner_UnknownUser(t *testing.T) {
	userCl := &userClientMock{
		getUserFn: func(ctx context.Context, userID int64) (*userservice.User, error) {
			return nil, userservice.ErrUserNotFound
		},
	}
	repo := &bookingRepoMock{
		listByOwnerFn: func(ctx context.Context, ownerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, userCl)

	_, err := svc.ListForOwner(context.Background(), &models.OwnerBookingsRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ListForItem

func TestListForItem_PassesOwnerPair(t *testing.T) {
	var gotItemID, gotOwnerID int64
	repo := &bookingRepoMock{
		listByItemFn: func(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error) {
			gotItemID, gotOwnerID = itemID, ownerID
			return []*domain.Booking{testBooking()}, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	resp, err := svc.ListForItem(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(5), gotItemID)
	assert.Equal(t, int64(2), gotOwnerID)
}

func TestListForItem_EmptyForForeignItem(t *testing.T) {
	repo := &bookingRepoMock{
		listByItemFn: func(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, okUserClient())

	resp, err := svc.ListForItem(context.Background(), 5, 99)
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}
