package trades

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"options-trade-log-go/internal/models"
)

// ErrNotFound means no trade matched the (id, user) pair. It deliberately
// collapses "does not exist" and "owned by someone else" into one outcome.
var ErrNotFound = errors.New("trade not found")

// Repository persists trades. Every operation is scoped to an owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a trade repository backed by db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns all trades owned by userID, most recent first.
func (r *Repository) ListForUser(userID uint) ([]models.Trade, error) {
	list := make([]models.Trade, 0)
	err := r.db.Where("user_id = ?", userID).
		Order("trade_date DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return list, nil
}

// Create validates the input and inserts a new trade for userID. The symbol
// is normalized to upper case before storage.
func (r *Repository) Create(userID uint, in Input) (uint, error) {
	tradeDate, err := in.validate()
	if err != nil {
		return 0, err
	}

	trade := models.Trade{
		UserID:      userID,
		TradeDate:   tradeDate,
		Symbol:      strings.ToUpper(in.Symbol),
		StrikePrice: in.StrikePrice,
		OptionType:  in.OptionType,
		Quantity:    in.Quantity,
		BuyPrice:    in.BuyPrice,
		SellPrice:   in.SellPrice,
		PL:          in.PL,
		ReturnPct:   in.ReturnPct,
	}
	if err := r.db.Create(&trade).Error; err != nil {
		return 0, fmt.Errorf("create trade: %w", err)
	}
	return trade.ID, nil
}

// Update replaces the mutable fields of the trade matching (tradeID, userID).
func (r *Repository) Update(userID, tradeID uint, in Input) error {
	tradeDate, err := in.validate()
	if err != nil {
		return err
	}

	res := r.db.Model(&models.Trade{}).
		Where("id = ? AND user_id = ?", tradeID, userID).
		Updates(map[string]any{
			"trade_date":   tradeDate,
			"symbol":       strings.ToUpper(in.Symbol),
			"strike_price": in.StrikePrice,
			"option_type":  in.OptionType,
			"quantity":     in.Quantity,
			"buy_price":    in.BuyPrice,
			"sell_price":   in.SellPrice,
			"pl":           in.PL,
			"return_pct":   in.ReturnPct,
		})
	if res.Error != nil {
		return fmt.Errorf("update trade: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the trade matching (tradeID, userID). The delete is physical.
func (r *Repository) Delete(userID, tradeID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", tradeID, userID).Delete(&models.Trade{})
	if res.Error != nil {
		return fmt.Errorf("delete trade: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
