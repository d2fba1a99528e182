package models

import "time"

type Admin struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Password  []byte    `db:"password" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	LastLogin time.Time `db:"last_login" json:"last_login,omitempty"`
}

// AdminClaims is what an admin token carries.
type AdminClaims struct {
	AdminID   string `json:"admin_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}
