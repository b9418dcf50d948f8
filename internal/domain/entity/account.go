package entity

import "time"

// Account is a user logged into the client on this machine.
type Account struct {
	UserID          int64     `json:"userId"`
	Username        string    `json:"username"`
	APIKey          string    `json:"-"`
	LastConnectedAt time.Time `json:"lastConnectedAt"`
}
