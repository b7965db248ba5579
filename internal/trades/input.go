package trades

import (
	"fmt"
	"time"

	"options-trade-log-go/internal/models"
)

// dateLayout is the calendar-date wire format for trade dates.
const dateLayout = "2006-01-02"

// Input carries the client-supplied fields for creating or fully replacing a
// trade. PL and ReturnPct are derived by the client and stored as given.
type Input struct {
	Date        string  `json:"date"`
	Symbol      string  `json:"symbol"`
	StrikePrice float64 `json:"strikePrice"`
	OptionType  string  `json:"optionType"`
	Quantity    int     `json:"quantity"`
	BuyPrice    float64 `json:"buyPrice"`
	SellPrice   float64 `json:"sellPrice"`
	PL          float64 `json:"pl"`
	ReturnPct   float64 `json:"returnPct"`
}

// ValidationError reports the first rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validate checks the input and returns the parsed trade date.
func (in *Input) validate() (time.Time, error) {
	if in.Date == "" {
		return time.Time{}, &ValidationError{Field: "date", Reason: "required"}
	}
	tradeDate, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if in.Symbol == "" {
		return time.Time{}, &ValidationError{Field: "symbol", Reason: "required"}
	}
	if in.OptionType != models.OptionTypeCall && in.OptionType != models.OptionTypePut {
		return time.Time{}, &ValidationError{Field: "optionType", Reason: "must be Call or Put"}
	}
	if in.StrikePrice <= 0 {
		return time.Time{}, &ValidationError{Field: "strikePrice", Reason: "must be greater than 0"}
	}
	if in.Quantity <= 0 {
		return time.Time{}, &ValidationError{Field: "quantity", Reason: "must be greater than 0"}
	}
	if in.BuyPrice <= 0 {
		return time.Time{}, &ValidationError{Field: "buyPrice", Reason: "must be greater than 0"}
	}
	if in.SellPrice <= 0 {
		return time.Time{}, &ValidationError{Field: "sellPrice", Reason: "must be greater than 0"}
	}
	return tradeDate, nil
}
