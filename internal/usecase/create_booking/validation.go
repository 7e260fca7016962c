package create_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует запрошенный интервал бронирования
//
// Даты сравниваются с сегодняшним днем с точностью до дня: интервал,
// начинающийся сегодня, допустим, даже если момент начала уже прошёл.
// Конец сравнивается с началом с полной точностью.
func validateRequest(req *Request, now time.Time) error {
	if req.BookerID <= 0 {
		return fmt.Errorf("%w: bookerID must be positive", ErrInvalidInput)
	}

	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Start == nil {
		return fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	if req.End == nil {
		return fmt.Errorf("%w: end date is required", ErrInvalidInput)
	}

	today := truncateToDay(now)

	if truncateToDay(*req.Start).Before(today) {
		return fmt.Errorf("%w: start date is in the past", ErrInvalidInput)
	}

	if req.End.Before(*req.Start) || truncateToDay(*req.End).Before(today) {
		return fmt.Errorf("%w: invalid end date", ErrInvalidInput)
	}

	return nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
