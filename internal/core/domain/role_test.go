package domain

import "testing"

func TestRole_IsValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleModerator, RoleSupport, RoleAdmin} {
		if !r.IsValid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	for _, r := range []Role{"", "admin", "OVERLORD"} {
		if r.IsValid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}
}

func TestRole_HasPermission(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleUser, PermReadProfile, true},
		{RoleUser, PermCreateComment, true},
		{RoleUser, PermManageUsers, false},
		{RoleModerator, PermDeleteComment, true},
		{RoleModerator, PermManageRoles, false},
		{RoleSupport, PermManageUsers, true},
		{RoleSupport, PermDeleteArticle, false},
		{Role("UNKNOWN"), PermReadProfile, false},
	}

	for _, tc := range cases {
		if got := tc.role.HasPermission(tc.perm); got != tc.want {
			t.Errorf("%s.HasPermission(%s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestRoleAdmin_GrantsEverything(t *testing.T) {
	for _, perms := range RolePermissions {
		for _, p := range perms {
			if !RoleAdmin.HasPermission(p) {
				t.Errorf("expected admin to hold %s", p)
			}
		}
	}
}

func TestUser_Role_FallsBackToDefault(t *testing.T) {
	u := &User{Profile: Profile{Role: "BOGUS"}}
	if got := u.Role(); got != DefaultRole {
		t.Fatalf("expected fallback to %s, got %s", DefaultRole, got)
	}

	u.Profile.Role = RoleSupport
	if got := u.Role(); got != RoleSupport {
		t.Fatalf("expected %s, got %s", RoleSupport, got)
	}
}
