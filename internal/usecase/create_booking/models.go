package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	BookerID int64      // ID заявителя
	ItemID   int64      // ID вещи
	Start    *time.Time // Начало интервала бронирования
	End      *time.Time // Конец интервала бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     // ID созданного бронирования
	StartDate   time.Time // Начало интервала
	EndDate     time.Time // Конец интервала
	Status      string    // Статус бронирования (всегда WAITING при создании)
	BookerID    int64     // ID заявителя
	ItemID      int64     // ID вещи
	ItemOwnerID int64     // ID владельца вещи на момент создания

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
