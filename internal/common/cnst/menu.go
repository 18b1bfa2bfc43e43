package cnst

// MenuItem is one node of the static two-level navigation tree. Children
// reference their group through ParentCode; group nodes have none.
type MenuItem struct {
	Code       string
	LabelKey   string
	Path       string
	ParentCode string
	Pinned     bool
}

// Menu codes. The tree is static application configuration, not data: roles
// store a subset of these codes as their permission set.
const (
	MenuDashboard = "dashboard"

	MenuEquipment       = "equipment"
	MenuEquipmentMaster = "equipment-master"
	MenuPMPlans         = "pm-plans"

	MenuInventory     = "inventory"
	MenuInventoryLots = "inventory-lots"

	MenuQuality  = "quality"
	MenuQCDefect = "qc-defect"
	MenuQCRepair = "qc-repair"

	MenuShipping       = "shipping"
	MenuShippingOrders = "shipping-orders"

	MenuAdmin      = "admin"
	MenuAdminUsers = "admin-users"
	MenuAdminRoles = "admin-roles"

	MenuPDA     = "pda"
	MenuPDAScan = "pda-scan"
)

// MenuTree is the full navigation configuration in render order. Dashboard is
// a pinned leaf-only group: its tab can never be closed.
var MenuTree = []MenuItem{
	{Code: MenuDashboard, LabelKey: "menu.dashboard", Path: "/dashboard", Pinned: true},

	{Code: MenuEquipment, LabelKey: "menu.equipment", Path: "/equipment"},
	{Code: MenuEquipmentMaster, LabelKey: "menu.equipment.master", Path: "/equipment/master", ParentCode: MenuEquipment},
	{Code: MenuPMPlans, LabelKey: "menu.equipment.pm", Path: "/equipment/pm-plans", ParentCode: MenuEquipment},

	{Code: MenuInventory, LabelKey: "menu.inventory", Path: "/inventory"},
	{Code: MenuInventoryLots, LabelKey: "menu.inventory.lots", Path: "/inventory/lots", ParentCode: MenuInventory},

	{Code: MenuQuality, LabelKey: "menu.quality", Path: "/quality"},
	{Code: MenuQCDefect, LabelKey: "menu.quality.defect", Path: "/quality/defect", ParentCode: MenuQuality},
	{Code: MenuQCRepair, LabelKey: "menu.quality.repair", Path: "/quality/repair", ParentCode: MenuQuality},

	{Code: MenuShipping, LabelKey: "menu.shipping", Path: "/shipping"},
	{Code: MenuShippingOrders, LabelKey: "menu.shipping.orders", Path: "/shipping/orders", ParentCode: MenuShipping},

	{Code: MenuAdmin, LabelKey: "menu.admin", Path: "/admin"},
	{Code: MenuAdminUsers, LabelKey: "menu.admin.users", Path: "/admin/users", ParentCode: MenuAdmin},
	{Code: MenuAdminRoles, LabelKey: "menu.admin.roles", Path: "/admin/roles", ParentCode: MenuAdmin},

	{Code: MenuPDA, LabelKey: "menu.pda", Path: "/pda"},
	{Code: MenuPDAScan, LabelKey: "menu.pda.scan", Path: "/pda/scan", ParentCode: MenuPDA},
}

// AllMenuCodes returns the full universe of menu codes, parents included.
func AllMenuCodes() []string {
	codes := make([]string, 0, len(MenuTree))
	for _, item := range MenuTree {
		codes = append(codes, item.Code)
	}
	return codes
}

// ChildrenOf returns the child codes of a group in tree order.
func ChildrenOf(parentCode string) []string {
	var children []string
	for _, item := range MenuTree {
		if item.ParentCode == parentCode {
			children = append(children, item.Code)
		}
	}
	return children
}
