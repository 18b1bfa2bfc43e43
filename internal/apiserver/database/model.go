package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an MES account.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	RoleID    uint      `json:"roleId" gorm:"index"`
	PhotoURL  string    `json:"photoUrl" gorm:"type:varchar(255)"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role represents an access role. Code is immutable after creation and
// system roles (ADMIN) cannot be deleted or re-permissioned.
type Role struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code        string    `json:"code" gorm:"type:varchar(50);uniqueIndex"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	IsSystem    bool      `json:"isSystem" gorm:"not null;default:false"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RolePermission is one granted menu code of a role. The set is always
// replaced wholesale on save.
type RolePermission struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RoleID   uint   `json:"roleId" gorm:"index:idx_role_menu,unique"`
	MenuCode string `json:"menuCode" gorm:"type:varchar(50);index:idx_role_menu,unique"`
}

// EquipmentStatus enumerates equipment master states.
type EquipmentStatus string

const (
	EquipmentRunning     EquipmentStatus = "RUNNING"
	EquipmentIdle        EquipmentStatus = "IDLE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
)

// Equipment is one machine on the harness line.
type Equipment struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Code        string          `json:"code" gorm:"type:varchar(50);uniqueIndex"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Line        string          `json:"line" gorm:"type:varchar(50)"`
	Status      EquipmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'IDLE'"`
	InstalledAt *time.Time      `json:"installedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PMPlan is a preventive maintenance plan for one piece of equipment.
// NextDueAt is derived from LastDoneAt and CycleDays when the plan is saved.
type PMPlan struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	EquipmentID uint       `json:"equipmentId" gorm:"index"`
	Title       string     `json:"title" gorm:"type:varchar(100);not null"`
	CycleDays   int        `json:"cycleDays" gorm:"not null"`
	LastDoneAt  *time.Time `json:"lastDoneAt"`
	NextDueAt   *time.Time `json:"nextDueAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// LotStatus enumerates inventory LOT states.
type LotStatus string

const (
	LotInStock LotStatus = "IN_STOCK"
	LotHold    LotStatus = "HOLD"
	LotShipped LotStatus = "SHIPPED"
)

// Lot is a traceable batch of material or product.
type Lot struct {
	ID        uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Serial    string          `json:"serial" gorm:"type:varchar(64);uniqueIndex"`
	PartNo    string          `json:"partNo" gorm:"type:varchar(50);index"`
	Qty       decimal.Decimal `json:"qty" gorm:"type:decimal(14,3)"`
	Location  string          `json:"location" gorm:"type:varchar(50)"`
	Status    LotStatus       `json:"status" gorm:"type:varchar(20);not null;default:'IN_STOCK'"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// LotScan records one PDA barcode scan of a lot.
type LotScan struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	LotID     uint      `json:"lotId" gorm:"index"`
	DeviceID  string    `json:"deviceId" gorm:"type:varchar(50)"`
	ScannedAt time.Time `json:"scannedAt"`
}

// OQCResult enumerates outgoing-inspection outcomes.
type OQCResult string

const (
	OQCPending OQCResult = "PENDING"
	OQCPass    OQCResult = "PASS"
	OQCFail    OQCResult = "FAIL"
)

// OQCRequest is an outgoing quality inspection of a lot.
type OQCRequest struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	LotID       uint            `json:"lotId" gorm:"index"`
	SampleQty   decimal.Decimal `json:"sampleQty" gorm:"type:decimal(14,3)"`
	Result      OQCResult       `json:"result" gorm:"type:varchar(20);not null;default:'PENDING'"`
	InspectedBy string          `json:"inspectedBy" gorm:"type:varchar(50)"`
	InspectedAt *time.Time      `json:"inspectedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ShipmentStatus enumerates shipping states.
type ShipmentStatus string

const (
	ShipmentReady   ShipmentStatus = "READY"
	ShipmentShipped ShipmentStatus = "SHIPPED"
)

// Shipment is an outbound delivery of a lot.
type Shipment struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	LotID       uint           `json:"lotId" gorm:"index"`
	Destination string         `json:"destination" gorm:"type:varchar(100)"`
	Status      ShipmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'READY'"`
	ShippedAt   *time.Time     `json:"shippedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
