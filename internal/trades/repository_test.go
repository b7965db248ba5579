package trades

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"options-trade-log-go/internal/models"
)

func newTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Trade{}))
	return NewRepository(db), db
}

func validInput() Input {
	return Input{
		Date:        "2024-01-05",
		Symbol:      "aapl",
		StrikePrice: 150,
		OptionType:  "Call",
		Quantity:    2,
		BuyPrice:    1.5,
		SellPrice:   2.0,
		PL:          1.0,
		ReturnPct:   33.33,
	}
}

func TestCreateRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Create(1, validInput())
	require.NoError(t, err)
	assert.NotZero(t, id)

	list, err := repo.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, "AAPL", got.Symbol) // normalized upper-case
	assert.Equal(t, "2024-01-05", got.TradeDate.Format("2006-01-02"))
	assert.Equal(t, 150.0, got.StrikePrice)
	assert.Equal(t, "Call", got.OptionType)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 1.5, got.BuyPrice)
	assert.Equal(t, 2.0, got.SellPrice)
	assert.Equal(t, 1.0, got.PL)
	assert.Equal(t, 33.33, got.ReturnPct)
}

func TestCreateValidation(t *testing.T) {
	repo, _ := newTestRepo(t)

	testCases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{name: "missing date", mutate: func(in *Input) { in.Date = "" }, field: "date"},
		{name: "bad date format", mutate: func(in *Input) { in.Date = "05/01/2024" }, field: "date"},
		{name: "missing symbol", mutate: func(in *Input) { in.Symbol = "" }, field: "symbol"},
		{name: "bad option type", mutate: func(in *Input) { in.OptionType = "Straddle" }, field: "optionType"},
		{name: "lowercase option type", mutate: func(in *Input) { in.OptionType = "call" }, field: "optionType"},
		{name: "zero strike", mutate: func(in *Input) { in.StrikePrice = 0 }, field: "strikePrice"},
		{name: "negative strike", mutate: func(in *Input) { in.StrikePrice = -1 }, field: "strikePrice"},
		{name: "zero quantity", mutate: func(in *Input) { in.Quantity = 0 }, field: "quantity"},
		{name: "zero buy price", mutate: func(in *Input) { in.BuyPrice = 0 }, field: "buyPrice"},
		{name: "zero sell price", mutate: func(in *Input) { in.SellPrice = 0 }, field: "sellPrice"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := repo.Create(1, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestListOrdering(t *testing.T) {
	repo, _ := newTestRepo(t)

	// Inserted out of order; the list must come back trade_date DESC with
	// ties broken by id DESC.
	dates := []string{"2024-01-03", "2024-01-10", "2024-01-03", "2024-01-07"}
	for _, d := range dates {
		in := validInput()
		in.Date = d
		_, err := repo.Create(1, in)
		require.NoError(t, err)
	}

	list, err := repo.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, "2024-01-10", list[0].TradeDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-07", list[1].TradeDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-03", list[2].TradeDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-03", list[3].TradeDate.Format("2006-01-02"))
	assert.Greater(t, list[2].ID, list[3].ID)
}

func TestOwnerScoping(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Create(1, validInput())
	require.NoError(t, err)

	// Another user never sees user 1's trades.
	list, err := repo.ListForUser(2)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Update and delete by a non-owner collapse to the same not-found
	// outcome as a missing trade.
	assert.ErrorIs(t, repo.Update(2, id, validInput()), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(2, id), ErrNotFound)

	// The owner's trade is untouched.
	list, err = repo.ListForUser(1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Create(1, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Symbol = "tsla"
	in.SellPrice = 3.0
	in.PL = 3.0
	require.NoError(t, repo.Update(1, id, in))

	list, err := repo.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "TSLA", list[0].Symbol)
	assert.Equal(t, 3.0, list[0].SellPrice)
	assert.Equal(t, 3.0, list[0].PL)

	assert.ErrorIs(t, repo.Update(1, id+999, in), ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, db := newTestRepo(t)

	id, err := repo.Create(1, validInput())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(1, id))

	// Physical delete, not a soft delete.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Trade{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(1, id), ErrNotFound)
}

func TestCreateStoresDerivedFieldsAsGiven(t *testing.T) {
	repo, _ := newTestRepo(t)

	// The client computes pl/return_pct; the server stores them without
	// recomputation even when inconsistent with the prices.
	in := validInput()
	in.PL = 999
	in.ReturnPct = -5

	id, err := repo.Create(1, in)
	require.NoError(t, err)

	list, err := repo.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, 999.0, list[0].PL)
	assert.Equal(t, -5.0, list[0].ReturnPct)
}
