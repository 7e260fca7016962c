package cache

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
)

// UserClient интерфейс клиента UserService, оборачиваемого кэшем
type UserClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// ItemClient интерфейс клиента ItemService, оборачиваемого кэшем
type ItemClient interface {
	GetItem(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
