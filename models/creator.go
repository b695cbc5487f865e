package models

import (
	"time"
)

// Creator is the owner of published content. The wallet address doubles as
// the account identifier and the payment destination.
type Creator struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WalletAddress string    `json:"walletAddress" gorm:"column:wallet_address;uniqueIndex;not null"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Creator) TableName() string {
	return "creators"
}
