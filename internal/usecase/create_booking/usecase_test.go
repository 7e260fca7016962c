package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
)

// Моки зависимостей

type bookingRepoMock struct {
	createFn    func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	conflictsFn func(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error)
}

func (m *bookingRepoMock) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *bookingRepoMock) GetApprovedByItemEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error) {
	return m.conflictsFn(ctx, itemID, after)
}

type userClientMock struct {
	getUserFn func(ctx context.Context, userID int64) (*userservice.User, error)
}

func (m *userClientMock) GetUser(ctx context.Context, userID int64) (*userservice.User, error) {
	return m.getUserFn(ctx, userID)
}

type itemClientMock struct {
	getItemFn func(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error)
}

func (m *itemClientMock) GetItem(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error) {
	return m.getItemFn(ctx, itemID, requesterID)
}

// txManagerMock выполняет функцию без настоящей транзакции
type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

// Общие фикстуры

var testNow = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func availableItem() *itemservice.Item {
	return &itemservice.Item{ID: 5, OwnerID: 2, Name: "дрель", Available: true}
}

func okUserClient() *userClientMock {
	return &userClientMock{
		getUserFn: func(ctx context.Context, userID int64) (*userservice.User, error) {
			return &userservice.User{ID: userID, Name: "user"}, nil
		},
	}
}

func okItemClient(item *itemservice.Item) *itemClientMock {
	return &itemClientMock{
		getItemFn: func(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error) {
			return item, nil
		},
	}
}

func emptyConflictsRepo() *bookingRepoMock {
	return &bookingRepoMock{
		conflictsFn: func(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			created := *booking
			created.ID = 100
			created.CreatedAt = testNow
			created.UpdatedAt = testNow
			return &created, nil
		},
	}
}

func newTestUseCase(repo *bookingRepoMock, userCl *userClientMock, itemCl *itemClientMock) *UseCase {
	return NewUseCase(repo, userCl, itemCl, &txManagerMock{}, &noopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testNow})
}

func validRequest() *Request {
	return &Request{
		BookerID: 1,
		ItemID:   5,
		Start:    datePtr(testNow.Add(24 * time.Hour)),
		End:      datePtr(testNow.Add(48 * time.Hour)),
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	repo := emptyConflictsRepo()
	uc := newTestUseCase(repo, okUserClient(), okItemClient(availableItem()))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusWaiting), resp.Status)
	assert.Equal(t, int64(1), resp.BookerID)
	assert.Equal(t, int64(5), resp.ItemID)
	assert.Equal(t, int64(2), resp.ItemOwnerID)
}

func TestExecute_OwnItem(t *testing.T) {
	item := availableItem()
	item.OwnerID = 1 // заявитель и есть владелец
	uc := newTestUseCase(emptyConflictsRepo(), okUserClient(), okItemClient(item))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOwnItem)
}

func TestExecute_ItemUnavailable(t *testing.T) {
	item := availableItem()
	item.Available = false
	uc := newTestUseCase(emptyConflictsRepo(), okUserClient(), okItemClient(item))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestExecute_ItemNotFound(t *testing.T) {
	itemCl := &itemClientMock{
		getItemFn: func(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error) {
			return nil, itemservice.ErrItemNotFound
		},
	}
	uc := newTestUseCase(emptyConflictsRepo(), okUserClient(), itemCl)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestExecute_BookerNotFound(t *testing.T) {
	userCl := &userClientMock{
		getUserFn: func(ctx context.Context, userID int64) (*userservice.User, error) {
			return nil, userservice.ErrUserNotFound
		},
	}
	uc := newTestUseCase(emptyConflictsRepo(), userCl, okItemClient(availableItem()))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_IntervalValidation(t *testing.T) {
	uc := newTestUseCase(emptyConflictsRepo(), okUserClient(), okItemClient(availableItem()))

	t.Run("missing start", func(t *testing.T) {
		req := validRequest()
		req.Start = nil
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing end", func(t *testing.T) {
		req := validRequest()
		req.End = nil
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start in the past", func(t *testing.T) {
		req := validRequest()
		req.Start = datePtr(testNow.AddDate(0, 0, -1))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.End = datePtr(req.Start.Add(-time.Hour))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start earlier today is allowed", func(t *testing.T) {
		// сравнение с точностью до дня: интервал, начавшийся сегодня утром, валиден
		req := validRequest()
		req.Start = datePtr(time.Date(2025, 10, 10, 8, 0, 0, 0, time.UTC))
		req.End = datePtr(time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC))
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_ConflictWithApproved(t *testing.T) {
	// Подтвержденная бронь [10.01, 20.01] блокирует любую заявку, чье начало
	// раньше её конца, даже если сами интервалы не пересекаются
	repo := emptyConflictsRepo()
	repo.conflictsFn = func(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error) {
		return []*domain.Booking{{ID: 7, Status: domain.StatusApproved}}, nil
	}
	uc := newTestUseCase(repo, okUserClient(), okItemClient(availableItem()))

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingConflict)
	// текст ошибки называет вещь
	assert.Contains(t, err.Error(), "дрель")
}

func TestExecute_ConflictCheckUsesRequestedStart(t *testing.T) {
	var gotAfter time.Time
	repo := emptyConflictsRepo()
	inner := repo.conflictsFn
	repo.conflictsFn = func(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error) {
		gotAfter = after
		return inner(ctx, itemID, after)
	}
	uc := newTestUseCase(repo, okUserClient(), okItemClient(availableItem()))

	req := validRequest()
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// предикат конфликта привязан к началу запрошенного интервала
	assert.Equal(t, *req.Start, gotAfter)
}

func TestExecute_CreateFailure(t *testing.T) {
	repo := emptyConflictsRepo()
	repo.createFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		return nil, errors.New("db down")
	}
	uc := newTestUseCase(repo, okUserClient(), okItemClient(availableItem()))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NewBookingIsWaiting(t *testing.T) {
	var created *domain.Booking
	repo := emptyConflictsRepo()
	inner := repo.createFn
	repo.createFn = func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return inner(ctx, booking)
	}
	uc := newTestUseCase(repo, okUserClient(), okItemClient(availableItem()))

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, domain.StatusWaiting, created.Status)
	assert.Equal(t, int64(2), created.ItemOwnerID)
}
