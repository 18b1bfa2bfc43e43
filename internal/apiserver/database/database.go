package database

import (
	"context"
)

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a transaction.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]*User, error)

	CreateRole(ctx context.Context, role *Role) error
	GetRoleByID(ctx context.Context, id uint) (*Role, error)
	GetRoleByCode(ctx context.Context, code string) (*Role, error)
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, id uint) error
	ListRoles(ctx context.Context) ([]*Role, error)

	// GetRolePermissions returns the stored menu codes of a role.
	GetRolePermissions(ctx context.Context, roleID uint) ([]string, error)
	// ReplaceRolePermissions replaces the whole permission set of a role.
	ReplaceRolePermissions(ctx context.Context, roleID uint, menuCodes []string) error

	CreateEquipment(ctx context.Context, eq *Equipment) error
	GetEquipmentByID(ctx context.Context, id uint) (*Equipment, error)
	UpdateEquipment(ctx context.Context, eq *Equipment) error
	DeleteEquipment(ctx context.Context, id uint) error
	ListEquipment(ctx context.Context) ([]*Equipment, error)

	CreatePMPlan(ctx context.Context, plan *PMPlan) error
	GetPMPlanByID(ctx context.Context, id uint) (*PMPlan, error)
	UpdatePMPlan(ctx context.Context, plan *PMPlan) error
	DeletePMPlan(ctx context.Context, id uint) error
	// ListPMPlans lists plans, optionally filtered by equipment (0 = all).
	ListPMPlans(ctx context.Context, equipmentID uint) ([]*PMPlan, error)

	CreateLot(ctx context.Context, lot *Lot) error
	GetLotByID(ctx context.Context, id uint) (*Lot, error)
	GetLotBySerial(ctx context.Context, serial string) (*Lot, error)
	UpdateLot(ctx context.Context, lot *Lot) error
	DeleteLot(ctx context.Context, id uint) error
	ListLots(ctx context.Context) ([]*Lot, error)

	CreateLotScan(ctx context.Context, scan *LotScan) error
	ListLotScans(ctx context.Context, lotID uint) ([]*LotScan, error)

	CreateOQCRequest(ctx context.Context, req *OQCRequest) error
	GetOQCRequestByID(ctx context.Context, id uint) (*OQCRequest, error)
	UpdateOQCRequest(ctx context.Context, req *OQCRequest) error
	ListOQCRequests(ctx context.Context) ([]*OQCRequest, error)

	CreateShipment(ctx context.Context, s *Shipment) error
	GetShipmentByID(ctx context.Context, id uint) (*Shipment, error)
	UpdateShipment(ctx context.Context, s *Shipment) error
	ListShipments(ctx context.Context) ([]*Shipment, error)
}
