package decide_booking

import "time"

// Request модель запроса на решение по заявке
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID решающего пользователя (должен быть владельцем вещи)
	Approved  bool  // true - подтвердить, false - отклонить
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID          int64     // ID бронирования
	StartDate   time.Time // Начало интервала
	EndDate     time.Time // Конец интервала
	Status      string    // Новый статус (APPROVED или REJECTED)
	BookerID    int64     // ID заявителя
	ItemID      int64     // ID вещи
	ItemOwnerID int64     // ID владельца вещи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
