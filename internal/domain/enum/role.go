package enum

// Role is a staff member's role in the shop.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleStaff
}

// Permission names checked by the HTTP layer.
const (
	PermCustomersManage = "customers.manage"
	PermItemsManage     = "items.manage"
	PermOrdersManage    = "orders.manage"
	PermOrdersOverride  = "orders.override_status"
	PermInventoryManage = "inventory.manage"
	PermDashboardView   = "dashboard.view"
	PermReportsExport   = "reports.export"
	PermUsersManage     = "users.manage"
	PermSettingsManage  = "settings.manage"
	PermPrinterUse      = "printer.use"
)

var staffPermissions = []string{
	PermCustomersManage,
	PermItemsManage,
	PermOrdersManage,
	PermInventoryManage,
	PermDashboardView,
	PermPrinterUse,
}

var ownerPermissions = append(append([]string{}, staffPermissions...),
	PermOrdersOverride,
	PermReportsExport,
	PermUsersManage,
	PermSettingsManage,
)

// Permissions returns the permission set granted to r.
func (r Role) Permissions() []string {
	switch r {
	case RoleOwner:
		return append([]string{}, ownerPermissions...)
	case RoleStaff:
		return append([]string{}, staffPermissions...)
	}
	return nil
}
