package constants

const (
	Superadmin = "superadmin"
	Admin      = "admin"
	Manager    = "manager"
	Technician = "technician"
	Viewer     = "viewer"
)

// ValidRoles is the set of allowed DB values for user role.
var ValidRoles = []string{Viewer, Technician, Manager, Admin, Superadmin}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
