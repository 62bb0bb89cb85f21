package models

import "time"

// User is a registered account. Secrets and device tokens never leave the
// service in JSON.
type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	OTP          *string       `json:"-"`
	Tokens       []DeviceToken `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
}
