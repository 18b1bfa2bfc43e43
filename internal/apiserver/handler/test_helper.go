package handler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/auth/jwt"
)

var errNotFound = errors.New("record not found")

// mustNewJWTService builds a jwt.Service for handler tests.
func mustNewJWTService() *jwt.Service {
	svc, err := jwt.NewService(jwt.Config{
		SecretKey: "test-secret-key-for-handler-tests-0123456789",
		Duration:  time.Hour,
	})
	if err != nil {
		panic(err)
	}
	return svc
}

// fakeDB is an in-memory database.Database used by handler tests.
type fakeDB struct {
	mu sync.Mutex

	users       map[uint]*database.User
	roles       map[uint]*database.Role
	permissions map[uint][]string
	equipment   map[uint]*database.Equipment
	pmPlans     map[uint]*database.PMPlan
	lots        map[uint]*database.Lot
	lotScans    []*database.LotScan
	oqcRequests map[uint]*database.OQCRequest
	shipments   map[uint]*database.Shipment

	nextID uint
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:       map[uint]*database.User{},
		roles:       map[uint]*database.Role{},
		permissions: map[uint][]string{},
		equipment:   map[uint]*database.Equipment{},
		pmPlans:     map[uint]*database.PMPlan{},
		lots:        map[uint]*database.Lot{},
		oqcRequests: map[uint]*database.OQCRequest{},
		shipments:   map[uint]*database.Shipment{},
		nextID:      0,
	}
}

func (f *fakeDB) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeDB) Close() error { return nil }

func (f *fakeDB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeDB) CreateUser(_ context.Context, user *database.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.id()
	f.users[user.ID] = user
	return nil
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (*database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateUser(_ context.Context, user *database.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return errNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeDB) DeleteUser(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeDB) ListUsers(_ context.Context) ([]*database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) CreateRole(_ context.Context, role *database.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	role.ID = f.id()
	f.roles[role.ID] = role
	return nil
}

func (f *fakeDB) GetRoleByID(_ context.Context, id uint) (*database.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) GetRoleByCode(_ context.Context, code string) (*database.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateRole(_ context.Context, role *database.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[role.ID]; !ok {
		return errNotFound
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeDB) DeleteRole(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.roles, id)
	delete(f.permissions, id)
	return nil
}

func (f *fakeDB) ListRoles(_ context.Context) ([]*database.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) GetRolePermissions(_ context.Context, roleID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.permissions[roleID]...), nil
}

func (f *fakeDB) ReplaceRolePermissions(_ context.Context, roleID uint, menuCodes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissions[roleID] = append([]string(nil), menuCodes...)
	return nil
}

func (f *fakeDB) CreateEquipment(_ context.Context, eq *database.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	eq.ID = f.id()
	f.equipment[eq.ID] = eq
	return nil
}

func (f *fakeDB) GetEquipmentByID(_ context.Context, id uint) (*database.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if eq, ok := f.equipment[id]; ok {
		return eq, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateEquipment(_ context.Context, eq *database.Equipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.equipment[eq.ID]; !ok {
		return errNotFound
	}
	f.equipment[eq.ID] = eq
	return nil
}

func (f *fakeDB) DeleteEquipment(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.equipment, id)
	return nil
}

func (f *fakeDB) ListEquipment(_ context.Context) ([]*database.Equipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.Equipment, 0, len(f.equipment))
	for _, eq := range f.equipment {
		out = append(out, eq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) CreatePMPlan(_ context.Context, plan *database.PMPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan.ID = f.id()
	f.pmPlans[plan.ID] = plan
	return nil
}

func (f *fakeDB) GetPMPlanByID(_ context.Context, id uint) (*database.PMPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pmPlans[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdatePMPlan(_ context.Context, plan *database.PMPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pmPlans[plan.ID]; !ok {
		return errNotFound
	}
	f.pmPlans[plan.ID] = plan
	return nil
}

func (f *fakeDB) DeletePMPlan(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pmPlans, id)
	return nil
}

func (f *fakeDB) ListPMPlans(_ context.Context, equipmentID uint) ([]*database.PMPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.PMPlan, 0, len(f.pmPlans))
	for _, p := range f.pmPlans {
		if equipmentID != 0 && p.EquipmentID != equipmentID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) CreateLot(_ context.Context, lot *database.Lot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lot.ID = f.id()
	f.lots[lot.ID] = lot
	return nil
}

func (f *fakeDB) GetLotByID(_ context.Context, id uint) (*database.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.lots[id]; ok {
		return l, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) GetLotBySerial(_ context.Context, serial string) (*database.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lots {
		if l.Serial == serial {
			return l, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateLot(_ context.Context, lot *database.Lot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lots[lot.ID]; !ok {
		return errNotFound
	}
	f.lots[lot.ID] = lot
	return nil
}

func (f *fakeDB) DeleteLot(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lots, id)
	return nil
}

func (f *fakeDB) ListLots(_ context.Context) ([]*database.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.Lot, 0, len(f.lots))
	for _, l := range f.lots {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) CreateLotScan(_ context.Context, scan *database.LotScan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	scan.ID = f.id()
	f.lotScans = append(f.lotScans, scan)
	return nil
}

func (f *fakeDB) ListLotScans(_ context.Context, lotID uint) ([]*database.LotScan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.LotScan, 0)
	for _, s := range f.lotScans {
		if s.LotID == lotID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDB) CreateOQCRequest(_ context.Context, req *database.OQCRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = f.id()
	f.oqcRequests[req.ID] = req
	return nil
}

func (f *fakeDB) GetOQCRequestByID(_ context.Context, id uint) (*database.OQCRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.oqcRequests[id]; ok {
		return r, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateOQCRequest(_ context.Context, req *database.OQCRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.oqcRequests[req.ID]; !ok {
		return errNotFound
	}
	f.oqcRequests[req.ID] = req
	return nil
}

func (f *fakeDB) ListOQCRequests(_ context.Context) ([]*database.OQCRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.OQCRequest, 0, len(f.oqcRequests))
	for _, r := range f.oqcRequests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDB) CreateShipment(_ context.Context, s *database.Shipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.id()
	f.shipments[s.ID] = s
	return nil
}

func (f *fakeDB) GetShipmentByID(_ context.Context, id uint) (*database.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.shipments[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (f *fakeDB) UpdateShipment(_ context.Context, s *database.Shipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.shipments[s.ID]; !ok {
		return errNotFound
	}
	f.shipments[s.ID] = s
	return nil
}

func (f *fakeDB) ListShipments(_ context.Context) ([]*database.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*database.Shipment, 0, len(f.shipments))
	for _, s := range f.shipments {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ database.Database = (*fakeDB)(nil)
