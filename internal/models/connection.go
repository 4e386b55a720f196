package models

import "time"

// Connection holds the Clover merchant credentials obtained through the
// OAuth flow.
type Connection struct {
	ID          string    `json:"id" gorm:"type:uuid;primary_key"`
	MerchantID  string    `json:"merchant_id" gorm:"unique;not null"`
	ClientID    string    `json:"client_id" gorm:"not null"`
	AccessToken string    `json:"-" gorm:"not null"`
	Sandbox     bool      `json:"sandbox"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Connection) TableName() string {
	return "connections"
}
