package domain

import "time"

type Operator struct {
	ID           int64
	Company      string
	Name         string
	Address      string
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
