package utils

// Permission levels
const (
	DeveloperPermission = "developer"
	AdminPermission     = "admin"
	ModPermission       = "mod"
	GuestPermission     = "guest"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission returns the highest permission level a member holds, from
// their role set and the configured role lists. Every mutating command is
// gated on this before touching the ledger.
func CheckPermission(userRoleIDs []string, userID string, adminRoleIDs, modRoleIDs, developerUserIDs []string) string {
	if contains(developerUserIDs, userID) {
		return DeveloperPermission
	}

	for _, roleID := range userRoleIDs {
		if contains(adminRoleIDs, roleID) {
			return AdminPermission
		}
	}

	for _, roleID := range userRoleIDs {
		if contains(modRoleIDs, roleID) {
			return ModPermission
		}
	}

	return GuestPermission
}

// CanModerate reports whether a permission level may issue, edit or void
// records.
func CanModerate(level string) bool {
	return level == DeveloperPermission || level == AdminPermission || level == ModPermission
}

// CanAdminister reports whether a permission level may run destructive
// administrative operations such as clearing a subject's records.
func CanAdminister(level string) bool {
	return level == DeveloperPermission || level == AdminPermission
}
