package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:         {Viewer, Technician, Manager, Admin, Superadmin},
	CreateWarranty:   {Technician, Manager, Admin, Superadmin},
	UpdateWarranty:   {Technician, Manager, Admin, Superadmin},
	DeleteWarranty:   {Manager, Admin, Superadmin},
	AssignTechnician: {Manager, Admin, Superadmin},
	ManageCustomers:  {Manager, Admin, Superadmin},
	ManageProducts:   {Manager, Admin, Superadmin},
	ManageInvoices:   {Manager, Admin, Superadmin},
	ManagePartners:   {Manager, Admin, Superadmin},
	AdjustStock:      {Manager, Admin, Superadmin},
	RemoveUser:       {Admin, Superadmin},
	AssignRole:       {Admin, Superadmin},
	ManageAdmins:     {Superadmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
