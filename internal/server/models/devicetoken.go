package models

import "time"

// DeviceToken is the refresh token currently bound to one device of a user.
type DeviceToken struct {
	UserID    string
	DeviceID  string
	Token     string
	UpdatedAt time.Time
}
