package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/pagination"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"start_date",
	"end_date",
	"status",
	"booker_id",
	"item_id",
	"item_owner_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание с проверкой конфликта должно выполняться в сериализуемой транзакции,
// иначе две конкурирующие заявки могут обе пройти check-then-insert.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"start_date",
			"end_date",
			"status",
			"booker_id",
			"item_id",
			"item_owner_id",
		).
		Values(
			booking.StartDate,
			booking.EndDate,
			booking.Status,
			booking.BookerID,
			booking.ItemID,
			booking.ItemOwnerID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - GetByID используется
	// усейкейсом подтверждения перед сменой статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByBooker получает бронирования пользователя-заявителя
// Фильтрует по статусу и/или временным границам, сортирует по дате начала
// по убыванию, опционально ограничивает страницей
func (r *Repository) ListByBooker(
	ctx context.Context,
	bookerID int64,
	filter domain.BookingsFilter,
	page *pagination.PageRequest,
) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByBooker", squirrel.Eq{"booker_id": bookerID}, filter, page, "start_date DESC")
}

// ListByOwner получает бронирования вещей, принадлежащих владельцу
// Владелец берется из денормализованной колонки item_owner_id
func (r *Repository) ListByOwner(
	ctx context.Context,
	ownerID int64,
	filter domain.BookingsFilter,
	page *pagination.PageRequest,
) ([]*domain.Booking, error) {
	return r.list(ctx, "ListByOwner", squirrel.Eq{"item_owner_id": ownerID}, filter, page, "start_date DESC")
}

// ListByItemAndOwner получает бронирования вещи, видимые её владельцу
// Сортировка по дате начала по возрастанию (для вычисления last/next booking)
func (r *Repository) ListByItemAndOwner(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error) {
	return r.list(
		ctx,
		"ListByItemAndOwner",
		squirrel.Eq{"item_id": itemID, "item_owner_id": ownerID},
		domain.BookingsFilter{},
		nil,
		"start_date ASC",
	)
}

// GetApprovedByItemEndingAfter получает подтвержденные бронирования вещи,
// заканчивающиеся строго после указанного момента
//
// Это предикат конфликта при создании и подтверждении брони:
// status = APPROVED AND end_date > after. Начало существующей брони
// относительно конца новой намеренно не проверяется (см. DESIGN.md).
func (r *Repository) GetApprovedByItemEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": domain.StatusApproved}).
		Where(squirrel.Gt{"end_date": after}).
		OrderBy("start_date ASC")

	// Блокируем конфликтующие строки внутри транзакции создания/подтверждения
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedByItemEndingAfter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedByItemEndingAfter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, "GetApprovedByItemEndingAfter")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// list общий путь для листингов с фильтрацией, сортировкой и пагинацией
func (r *Repository) list(
	ctx context.Context,
	op string,
	subject squirrel.Eq,
	filter domain.BookingsFilter,
	page *pagination.PageRequest,
	orderBy string,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(subject).
		OrderBy(orderBy)

	selectBuilder = applyFilter(selectBuilder, filter)

	if page != nil {
		selectBuilder = selectBuilder.
			Limit(uint64(page.Limit())).
			Offset(uint64(page.Offset()))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBookings(rows, op)
}

// applyFilter добавляет условия фильтра к запросу
// Все сравнения строгие, в соответствии с определениями PAST/CURRENT/FUTURE
func applyFilter(sb squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartBefore != nil {
		sb = sb.Where(squirrel.Lt{"start_date": *filter.StartBefore})
	}
	if filter.StartAfter != nil {
		sb = sb.Where(squirrel.Gt{"start_date": *filter.StartAfter})
	}
	if filter.EndBefore != nil {
		sb = sb.Where(squirrel.Lt{"end_date": *filter.EndBefore})
	}
	if filter.EndAfter != nil {
		sb = sb.Where(squirrel.Gt{"end_date": *filter.EndAfter})
	}
	return sb
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Status,
		&booking.BookerID,
		&booking.ItemID,
		&booking.ItemOwnerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows, op string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}
