package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// gormDB implements Database over any GORM dialector. The per-driver types
// only differ in how the connection is opened.
type gormDB struct {
	db *gorm.DB
}

func newGormDB(dialector gorm.Dialector) (*gormDB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{}, &Role{}, &RolePermission{},
		&Equipment{}, &PMPlan{},
		&Lot{}, &LotScan{},
		&OQCRequest{}, &Shipment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &gormDB{db: db}, nil
}

// Close closes the database connection
func (g *gormDB) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a transaction carried through the context.
func (g *gormDB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

func (g *gormDB) conn(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, g.db)
}

func (g *gormDB) CreateUser(ctx context.Context, user *User) error {
	return g.conn(ctx).Create(user).Error
}

func (g *gormDB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := g.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *gormDB) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := g.conn(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *gormDB) UpdateUser(ctx context.Context, user *User) error {
	return g.conn(ctx).Save(user).Error
}

func (g *gormDB) DeleteUser(ctx context.Context, id uint) error {
	return g.conn(ctx).Delete(&User{}, id).Error
}

func (g *gormDB) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := g.conn(ctx).Order("username asc").Find(&users).Error
	return users, err
}

func (g *gormDB) CreateRole(ctx context.Context, role *Role) error {
	return g.conn(ctx).Create(role).Error
}

func (g *gormDB) GetRoleByID(ctx context.Context, id uint) (*Role, error) {
	var role Role
	if err := g.conn(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (g *gormDB) GetRoleByCode(ctx context.Context, code string) (*Role, error) {
	var role Role
	if err := g.conn(ctx).Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (g *gormDB) UpdateRole(ctx context.Context, role *Role) error {
	return g.conn(ctx).Save(role).Error
}

func (g *gormDB) DeleteRole(ctx context.Context, id uint) error {
	return g.conn(ctx).Delete(&Role{}, id).Error
}

func (g *gormDB) ListRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	err := g.conn(ctx).Order("sort_order asc, code asc").Find(&roles).Error
	return roles, err
}

func (g *gormDB) GetRolePermissions(ctx context.Context, roleID uint) ([]string, error) {
	var codes []string
	err := g.conn(ctx).
		Model(&RolePermission{}).
		Where("role_id = ?", roleID).
		Order("menu_code asc").
		Pluck("menu_code", &codes).Error
	return codes, err
}

func (g *gormDB) ReplaceRolePermissions(ctx context.Context, roleID uint, menuCodes []string) error {
	return g.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&RolePermission{}).Error; err != nil {
			return err
		}
		if len(menuCodes) == 0 {
			return nil
		}
		perms := make([]RolePermission, 0, len(menuCodes))
		for _, code := range menuCodes {
			perms = append(perms, RolePermission{RoleID: roleID, MenuCode: code})
		}
		return tx.Create(&perms).Error
	})
}

func (g *gormDB) CreateEquipment(ctx context.Context, eq *Equipment) error {
	return g.conn(ctx).Create(eq).Error
}

func (g *gormDB) GetEquipmentByID(ctx context.Context, id uint) (*Equipment, error) {
	var eq Equipment
	if err := g.conn(ctx).First(&eq, id).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

func (g *gormDB) UpdateEquipment(ctx context.Context, eq *Equipment) error {
	return g.conn(ctx).Save(eq).Error
}

func (g *gormDB) DeleteEquipment(ctx context.Context, id uint) error {
	return g.conn(ctx).Delete(&Equipment{}, id).Error
}

func (g *gormDB) ListEquipment(ctx context.Context) ([]*Equipment, error) {
	var eqs []*Equipment
	err := g.conn(ctx).Order("code asc").Find(&eqs).Error
	return eqs, err
}

func (g *gormDB) CreatePMPlan(ctx context.Context, plan *PMPlan) error {
	return g.conn(ctx).Create(plan).Error
}

func (g *gormDB) GetPMPlanByID(ctx context.Context, id uint) (*PMPlan, error) {
	var plan PMPlan
	if err := g.conn(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (g *gormDB) UpdatePMPlan(ctx context.Context, plan *PMPlan) error {
	return g.conn(ctx).Save(plan).Error
}

func (g *gormDB) DeletePMPlan(ctx context.Context, id uint) error {
	return g.conn(ctx).Delete(&PMPlan{}, id).Error
}

func (g *gormDB) ListPMPlans(ctx context.Context, equipmentID uint) ([]*PMPlan, error) {
	var plans []*PMPlan
	q := g.conn(ctx).Order("next_due_at asc")
	if equipmentID != 0 {
		q = q.Where("equipment_id = ?", equipmentID)
	}
	err := q.Find(&plans).Error
	return plans, err
}

func (g *gormDB) CreateLot(ctx context.Context, lot *Lot) error {
	return g.conn(ctx).Create(lot).Error
}

func (g *gormDB) GetLotByID(ctx context.Context, id uint) (*Lot, error) {
	var lot Lot
	if err := g.conn(ctx).First(&lot, id).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (g *gormDB) GetLotBySerial(ctx context.Context, serial string) (*Lot, error) {
	var lot Lot
	if err := g.conn(ctx).Where("serial = ?", serial).First(&lot).Error; err != nil {
		return nil, err
	}
	return &lot, nil
}

func (g *gormDB) UpdateLot(ctx context.Context, lot *Lot) error {
	return g.conn(ctx).Save(lot).Error
}

func (g *gormDB) DeleteLot(ctx context.Context, id uint) error {
	return g.conn(ctx).Delete(&Lot{}, id).Error
}

func (g *gormDB) ListLots(ctx context.Context) ([]*Lot, error) {
	var lots []*Lot
	err := g.conn(ctx).Order("created_at desc").Find(&lots).Error
	return lots, err
}

func (g *gormDB) CreateLotScan(ctx context.Context, scan *LotScan) error {
	return g.conn(ctx).Create(scan).Error
}

func (g *gormDB) ListLotScans(ctx context.Context, lotID uint) ([]*LotScan, error) {
	var scans []*LotScan
	err := g.conn(ctx).
		Where("lot_id = ?", lotID).
		Order("scanned_at desc").
		Find(&scans).Error
	return scans, err
}

func (g *gormDB) CreateOQCRequest(ctx context.Context, req *OQCRequest) error {
	return g.conn(ctx).Create(req).Error
}

func (g *gormDB) GetOQCRequestByID(ctx context.Context, id uint) (*OQCRequest, error) {
	var req OQCRequest
	if err := g.conn(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (g *gormDB) UpdateOQCRequest(ctx context.Context, req *OQCRequest) error {
	return g.conn(ctx).Save(req).Error
}

func (g *gormDB) ListOQCRequests(ctx context.Context) ([]*OQCRequest, error) {
	var reqs []*OQCRequest
	err := g.conn(ctx).Order("created_at desc").Find(&reqs).Error
	return reqs, err
}

func (g *gormDB) CreateShipment(ctx context.Context, s *Shipment) error {
	return g.conn(ctx).Create(s).Error
}

func (g *gormDB) GetShipmentByID(ctx context.Context, id uint) (*Shipment, error) {
	var s Shipment
	if err := g.conn(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *gormDB) UpdateShipment(ctx context.Context, s *Shipment) error {
	return g.conn(ctx).Save(s).Error
}

func (g *gormDB) ListShipments(ctx context.Context) ([]*Shipment, error) {
	var ships []*Shipment
	err := g.conn(ctx).Order("created_at desc").Find(&ships).Error
	return ships, err
}
