package models

import "time"

// Option contract sides accepted for Trade.OptionType.
const (
	OptionTypeCall = "Call"
	OptionTypePut  = "Put"
)

// Trade is one closed options position owned by a single user.
//
// PL and ReturnPct are computed by the client at submission time and stored
// as given; the server does not recompute them from the price fields.
type Trade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TradeDate time.Time `gorm:"type:date;not null" json:"trade_date"`
	Symbol    string    `gorm:"size:50;not null" json:"symbol"`

	StrikePrice float64 `gorm:"not null" json:"strike_price"`
	OptionType  string  `gorm:"size:4;not null" json:"option_type"` // "Call" or "Put"
	Quantity    int     `gorm:"not null" json:"quantity"`
	BuyPrice    float64 `gorm:"not null" json:"buy_price"`
	SellPrice   float64 `gorm:"not null" json:"sell_price"`
	PL          float64 `gorm:"column:pl;not null" json:"pl"`
	ReturnPct   float64 `gorm:"not null" json:"return_pct"`

	CreatedAt time.Time `json:"created_at"`
}
