package constants

const (
	ViewData         = "view_data"
	CreateWarranty   = "create_warranty"
	UpdateWarranty   = "update_warranty"
	DeleteWarranty   = "delete_warranty"
	AssignTechnician = "assign_technician"
	ManageCustomers  = "manage_customers"
	ManageProducts   = "manage_products"
	ManageInvoices   = "manage_invoices"
	ManagePartners   = "manage_partners"
	AdjustStock      = "adjust_stock"
	RemoveUser       = "remove_user"
	AssignRole       = "assign_role"
	ManageAdmins     = "manage_admins"
)
