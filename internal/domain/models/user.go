package models

import "time"

// User представляет пользователя магазина
type User struct {
	ID        int64
	Email     string
	PassHash  []byte
	Name      string
	Phone     string
	IsAdmin   bool
	CreatedAt time.Time
}
