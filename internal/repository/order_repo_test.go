package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-topup-store/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Order{}))
	return db
}

func newOrder(sn string, createdAt time.Time) *model.Order {
	o := &model.Order{
		SN:       sn,
		Game:     "Mobile Legends",
		PlayerID: "12345678",
		Server:   "2001",
		Nominal:  "100 Diamonds - Rp 16.000",
		Status:   model.StatusPending,
	}
	o.CreatedAt = createdAt
	return o
}

func TestCreateThenFindAllRoundTrip(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	orders, err := repo.FindAll()
	require.NoError(t, err)
	require.Empty(t, orders, "empty store must list zero orders")

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000001", base)))
	require.NoError(t, repo.Create(newOrder("TOPUP-000002", base.Add(time.Minute))))

	orders, err = repo.FindAll()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "TOPUP-000001", orders[0].SN, "insertion order preserved")
	require.Equal(t, "TOPUP-000002", orders[1].SN, "last appended order is last")
}

func TestFindBySN(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000042", base)))

	order, err := repo.FindBySN("TOPUP-000042")
	require.NoError(t, err)
	require.Equal(t, "Mobile Legends", order.Game)

	_, err = repo.FindBySN("TOPUP-999999")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindBySNFirstMatchWinsOnCollision(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first := newOrder("TOPUP-000007", base)
	first.Game = "Free Fire"
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(newOrder("TOPUP-000007", base.Add(time.Hour))))

	order, err := repo.FindBySN("TOPUP-000007")
	require.NoError(t, err)
	require.Equal(t, "Free Fire", order.Game, "oldest order wins on SN collision")
}

func TestSearchBySN(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000123", base)))
	require.NoError(t, repo.Create(newOrder("TOPUP-000456", base.Add(time.Minute))))

	orders, err := repo.SearchBySN("0001")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "TOPUP-000123", orders[0].SN)

	orders, err = repo.SearchBySN("")
	require.NoError(t, err)
	require.Len(t, orders, 2, "empty fragment matches everything")
}

func TestUpdateStatusChangesOnlyTargetOrder(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000001", base)))
	require.NoError(t, repo.Create(newOrder("TOPUP-000002", base.Add(time.Minute))))

	updated, err := repo.UpdateStatus("TOPUP-000001", model.StatusSukses, "operator-1")
	require.NoError(t, err)
	require.True(t, updated)

	orders, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, model.StatusSukses, orders[0].Status)
	require.Equal(t, "operator-1", orders[0].UpdatedBy)
	require.Equal(t, model.StatusPending, orders[1].Status, "other orders untouched")
	require.Equal(t, "Mobile Legends", orders[0].Game, "non-status fields untouched")
	require.Equal(t, "100 Diamonds - Rp 16.000", orders[0].Nominal)
}

func TestUpdateStatusUnknownSNIsNoOp(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000001", base)))

	before, err := repo.FindAll()
	require.NoError(t, err)

	updated, err := repo.UpdateStatus("TOPUP-404404", model.StatusSukses, "operator-1")
	require.NoError(t, err)
	require.False(t, updated)

	after, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, before, after, "unknown SN must leave the list unchanged")
}

func TestGetStats(t *testing.T) {
	repo := NewOrderRepo(newTestDB(t))

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(newOrder("TOPUP-000001", base)))
	require.NoError(t, repo.Create(newOrder("TOPUP-000002", base.Add(time.Minute))))
	require.NoError(t, repo.Create(newOrder("TOPUP-000003", base.Add(2*time.Minute))))

	_, err := repo.UpdateStatus("TOPUP-000002", model.StatusSukses, "op")
	require.NoError(t, err)
	_, err = repo.UpdateStatus("TOPUP-000003", model.StatusProses, "op")
	require.NoError(t, err)

	stats, err := repo.GetStats()
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.TotalOrders)
	require.EqualValues(t, 1, stats.PendingOrders)
	require.EqualValues(t, 1, stats.CompletedOrders)
}
