package repository

import (
	"go-topup-store/internal/model"

	"gorm.io/gorm"
)

// OrderStats backs the admin dashboard counters.
type OrderStats struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	CompletedOrders int64 `json:"completed_orders"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindBySN(sn string) (*model.Order, error)
	SearchBySN(fragment string) ([]model.Order, error)
	UpdateStatus(sn string, status model.OrderStatus, updatedBy string) (bool, error)
	GetStats() (*OrderStats, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

// FindAll returns orders in insertion order.
func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Order("created_at ASC").Find(&orders).Error
	return orders, err
}

// FindBySN returns the oldest order carrying the serial number. Serial
// numbers are not unique, so "first inserted wins" on collision.
func (r *orderRepo) FindBySN(sn string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("sn = ?", sn).Order("created_at ASC").First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SearchBySN returns orders whose serial number contains fragment. An empty
// fragment matches everything.
func (r *orderRepo) SearchBySN(fragment string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("sn LIKE ?", "%"+fragment+"%").Order("created_at ASC").Find(&orders).Error
	return orders, err
}

// UpdateStatus overwrites the status of the first order matching sn and
// reports whether anything changed. An unknown sn is a silent no-op.
func (r *orderRepo) UpdateStatus(sn string, status model.OrderStatus, updatedBy string) (bool, error) {
	var order model.Order
	err := r.db.Where("sn = ?", sn).Order("created_at ASC").First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = r.db.Model(&order).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
	}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *orderRepo) GetStats() (*OrderStats, error) {
	var stats OrderStats

	if err := r.db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	r.db.Model(&model.Order{}).Where("status = ?", model.StatusPending).Count(&stats.PendingOrders)
	r.db.Model(&model.Order{}).Where("status = ?", model.StatusSukses).Count(&stats.CompletedOrders)

	return &stats, nil
}
