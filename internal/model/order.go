package model

// OrderStatus is the lifecycle state of a top-up order. Any status may
// follow any other; the admin panel drives transitions manually.
type OrderStatus string

const (
	StatusPending OrderStatus = "Pending"
	StatusProses  OrderStatus = "Proses"
	StatusSukses  OrderStatus = "Sukses"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProses, StatusSukses:
		return true
	}
	return false
}

// Order is a customer top-up request. Nominal is a denormalized copy of the
// chosen denomination label at submission time; later catalog changes do not
// affect it. The SN index is deliberately non-unique: serial numbers are
// random and collisions are unguarded, lookups act on the first match.
type Order struct {
	BaseModel
	SN       string      `gorm:"type:varchar(20);index;not null" json:"sn"`
	Game     string      `gorm:"type:varchar(100);not null" json:"game" validate:"required"`
	PlayerID string      `gorm:"type:varchar(100);not null" json:"player_id" validate:"required"`
	Server   string      `gorm:"type:varchar(100);default:'N/A'" json:"server"`
	Nominal  string      `gorm:"type:varchar(255);not null" json:"nominal" validate:"required"`
	Status   OrderStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
}
