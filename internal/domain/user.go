package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStock    Role = "STOCK"
	RoleDelivery Role = "DELIVERY"
	RoleGuest    Role = "GUEST"
)

// RoleFromBackendName maps the role names used by the upstream user service
// onto app roles. "ADMINISTRADOR" is the stock manager role there.
func RoleFromBackendName(name string) Role {
	switch strings.ToUpper(name) {
	case "ADMINISTRADOR", "ADMIN", "STOCK":
		return RoleStock
	case "DELIVERY":
		return RoleDelivery
	default:
		return RoleCustomer
	}
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the session-resolved view of a user, carried by checkout and
// the HTTP auth middleware.
type Identity struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   Role   `json:"role"`
}
