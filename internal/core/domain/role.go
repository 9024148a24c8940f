package domain

// Role is the closed set of roles a user can hold. The wire values are
// uppercase and must not change; clients and stored tokens depend on them.
type Role string

const (
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleSupport   Role = "SUPPORT"
	RoleAdmin     Role = "ADMIN"
)

// DefaultRole is assigned when a user is created without an explicit role.
const DefaultRole = RoleUser

// IsValid reports whether r is one of the enumerated roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// Permission is a fine-grained capability granted through a role.
type Permission string

const (
	PermReadProfile   Permission = "read_profile"
	PermUpdateProfile Permission = "update_profile"

	PermReadArticles  Permission = "read_articles"
	PermCreateArticle Permission = "create_article"
	PermUpdateArticle Permission = "update_article"
	PermDeleteArticle Permission = "delete_article"

	PermCreateComment Permission = "create_comment"
	PermUpdateComment Permission = "update_comment"
	PermDeleteComment Permission = "delete_comment"

	PermManageUsers Permission = "manage_users"
	PermManageRoles Permission = "manage_roles"
)

// allPermissions is the full superset granted to admins.
var allPermissions = []Permission{
	PermReadProfile, PermUpdateProfile,
	PermReadArticles, PermCreateArticle, PermUpdateArticle, PermDeleteArticle,
	PermCreateComment, PermUpdateComment, PermDeleteComment,
	PermManageUsers, PermManageRoles,
}

// RolePermissions is the static role → permission table. Permissions are
// never stored per user; they are always derived from this table.
var RolePermissions = map[Role][]Permission{
	RoleUser: {
		PermReadProfile,
		PermUpdateProfile,
		PermReadArticles,
		PermCreateComment,
	},
	RoleModerator: {
		PermReadArticles,
		PermUpdateArticle,
		PermDeleteComment,
	},
	RoleSupport: {
		PermReadProfile,
		PermReadArticles,
		PermManageUsers,
	},
	RoleAdmin: allPermissions,
}

// HasPermission reports whether the role grants the given permission.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range RolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
