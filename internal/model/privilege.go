package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "order:update_status"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Update Order Status"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Order management
	{Code: "order:view", Name: "View Orders"},
	{Code: "order:update_status", Name: "Update Order Status"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
