package decide_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decide_booking: booking not found")

	// ErrItemNotFound возвращается, когда вещь бронирования не найдена
	ErrItemNotFound = errors.New("decide_booking: item not found")

	// ErrSelfDecision возвращается при попытке заявителя решить свою заявку
	// Наружу транслируется как not found
	ErrSelfDecision = errors.New("decide_booking: booker cannot decide own booking")

	// ErrStatusNotUpdatable возвращается, когда решающий не владелец вещи
	// либо заявка уже решена. Случаи намеренно не различаются для вызывающего
	ErrStatusNotUpdatable = errors.New("decide_booking: booking status cannot be updated")

	// ErrApprovalConflict возвращается, когда к моменту подтверждения по вещи
	// уже появилось пересекающееся подтвержденное бронирование
	ErrApprovalConflict = errors.New("decide_booking: approval conflicts with an existing approved booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decide_booking: internal error")
)
