// Package access derives a user's role and gates every role-scoped
// operation. All functions are pure; callers load the identity first.
package access

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
)

// Classify maps an identity to exactly one role. Priority order matters:
// a superuser who is also in the chef group is an admin.
func Classify(u *entities.User) domain.Role {
	if u == nil {
		return domain.RoleAnonymous
	}
	if u.IsSuperuser {
		return domain.RoleAdmin
	}
	if u.HasGroup(domain.ChefGroupName) {
		return domain.RoleChef
	}
	return domain.RoleUser
}

func CanViewAdminDashboard(u *entities.User) bool {
	return Classify(u) == domain.RoleAdmin
}

// CanViewChefDashboard denies admins and plain users; the chef dashboard
// route redirects them to the user dashboard instead of erroring.
func CanViewChefDashboard(u *entities.User) bool {
	return Classify(u) == domain.RoleChef
}

func CanCreateRecipe(u *entities.User) bool {
	return Classify(u) == domain.RoleChef
}

// CanModifyRecipe allows the owner or an admin. A recipe whose owner was
// removed has a nil UserID and matches nobody but admins.
func CanModifyRecipe(u *entities.User, r *entities.Recipe) bool {
	if u == nil || r == nil {
		return false
	}
	if Classify(u) == domain.RoleAdmin {
		return true
	}
	return r.UserID != nil && *r.UserID == u.ID
}

func CanPromoteUser(u *entities.User) bool {
	return Classify(u) == domain.RoleAdmin
}

// DashboardRoute is the one place a role maps to a dashboard path. Both the
// post-login redirect and the deny-redirects go through it.
func DashboardRoute(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return domain.PathDashboardAdmin
	case domain.RoleChef:
		return domain.PathDashboardChef
	case domain.RoleUser:
		return domain.PathDashboardUser
	default:
		return domain.PathLogin
	}
}
