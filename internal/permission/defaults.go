package permission

// RoleSeed is a role definition applied at startup when the role is missing
type RoleSeed struct {
	Name        string
	Description string
	Permissions Set
}

// DefaultRoles are the built-in roles. They are seed data; the workflow reads
// whatever permissions are stored for a role.
func DefaultRoles() []RoleSeed {
	crud := []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
	review := []string{ActionApprove, ActionReject, ActionPublish}

	admin := Set{}
	for _, module := range []string{ModuleArticles, ModuleUsers, ModuleCategories, ModuleTags} {
		for _, a := range crud {
			admin.Grant(module, a)
		}
		for _, a := range review {
			admin.Grant(module, a)
		}
	}
	admin.Grant(ModuleArticles, ActionSubmit)

	user := Set{}
	for _, a := range []string{ActionCreate, ActionRead, ActionUpdate, ActionSubmit} {
		user.Grant(ModuleArticles, a)
	}

	return []RoleSeed{
		{Name: "admin", Description: "Full access, reviews and publishes articles", Permissions: admin},
		{Name: "user", Description: "Writes and submits own articles", Permissions: user},
	}
}
