package user

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered account. IDs are opaque and provider-prefixed
// ("phone:+2519...", "github:...", "google:..."). The wallet balance is a
// decimal string and must never go negative.
type User struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"displayName"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	AvatarURL         string    `json:"avatarUrl"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	WalletBalance     string    `json:"walletBalance"`
	IsBanned          bool      `json:"isBanned"`
	IsVerified        bool      `json:"isVerified"`
	LoginMethod       string    `json:"loginMethod"`
	RegistrationDate  time.Time `json:"registrationDate"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Balance parses the wallet balance, treating the empty string as zero.
func (u User) Balance() (decimal.Decimal, error) {
	if u.WalletBalance == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(u.WalletBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse wallet balance %q: %w", u.WalletBalance, err)
	}
	return d, nil
}
