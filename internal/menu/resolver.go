// Package menu maps roles to navigation trees.
package menu

import "github.com/vidyalink/console-api/internal/models"

func dashboardGroup() models.MenuGroup {
	return models.MenuGroup{
		ID:    "dashboard",
		Title: "Dashboard",
		Items: []models.MenuItem{
			{ID: "default", Title: "Dashboard", Route: "/dashboard", Icon: "dashboard", Breadcrumbs: false},
		},
	}
}

// ResolverFor returns the ordered menu groups for a role. The mapping is
// stateless and deterministic: the same role always yields the same tree.
// Unknown or empty roles yield an empty list.
func ResolverFor(role models.Role) []models.MenuGroup {
	if !role.Valid() {
		return []models.MenuGroup{}
	}

	groups := []models.MenuGroup{dashboardGroup()}

	switch role {
	case models.RoleAdmin:
		groups = append(groups, models.MenuGroup{
			ID:    "admin",
			Title: "Admin",
			Items: []models.MenuItem{
				{ID: "schools", Title: "Schools", Route: "/schools", Icon: "school", Breadcrumbs: true},
				{ID: "teachers", Title: "Teachers", Route: "/teachers", Icon: "users", Breadcrumbs: true},
				{ID: "students", Title: "Students", Route: "/students", Icon: "user", Breadcrumbs: true},
				{ID: "fees", Title: "Fee Structures", Route: "/fees", Icon: "receipt", Breadcrumbs: true},
			},
		})
	case models.RoleSchool:
		groups = append(groups, models.MenuGroup{
			ID:    "school",
			Title: "School",
			Items: []models.MenuItem{
				{ID: "teachers", Title: "Teachers", Route: "/teachers", Icon: "users", Breadcrumbs: true},
				{ID: "students", Title: "Students", Route: "/students", Icon: "user", Breadcrumbs: true},
				{ID: "fees", Title: "Fee Structures", Route: "/fees", Icon: "receipt", Breadcrumbs: true},
				{ID: "attendance", Title: "Attendance", Route: "/attendance", Icon: "calendar", Breadcrumbs: true},
			},
		})
	case models.RoleTeacher:
		groups = append(groups, models.MenuGroup{
			ID:    "teacher",
			Title: "Teacher",
			Items: []models.MenuItem{
				{ID: "students", Title: "Students", Route: "/students", Icon: "user", Breadcrumbs: true},
				{ID: "attendance", Title: "Mark Attendance", Route: "/attendance/mark", Icon: "checklist", Breadcrumbs: true},
				{ID: "calendar", Title: "Attendance Calendar", Route: "/attendance/calendar", Icon: "calendar", Breadcrumbs: true},
			},
		})
	case models.RoleStudent:
		groups = append(groups, models.MenuGroup{
			ID:    "student",
			Title: "Student",
			Items: []models.MenuItem{
				{ID: "calendar", Title: "My Attendance", Route: "/attendance/calendar", Icon: "calendar", Breadcrumbs: true},
				{ID: "payments", Title: "Payments", Route: "/payments", Icon: "currency", Breadcrumbs: true},
			},
		})
	}

	return groups
}
