package domain

import "github.com/google/uuid"

// Claims - данные пользователя из access-токена сервиса аутентификации
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}
