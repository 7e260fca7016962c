package create_booking

import "errors"

var (
	// ErrItemNotFound возвращается, когда вещь не найдена
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrUserNotFound возвращается, когда заявитель не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrOwnItem возвращается при попытке владельца забронировать свою вещь
	// Наружу транслируется как not found, чтобы не раскрывать владение
	ErrOwnItem = errors.New("create_booking: item cannot be booked by its owner")

	// ErrItemUnavailable возвращается, когда вещь помечена недоступной
	ErrItemUnavailable = errors.New("create_booking: item is not available")

	// ErrBookingConflict возвращается, когда по вещи уже есть подтвержденное
	// бронирование, заканчивающееся после начала запрошенного интервала
	ErrBookingConflict = errors.New("create_booking: item cannot be booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
