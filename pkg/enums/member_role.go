package enums

// MemberRole describes what a user may do inside a studio.
type MemberRole string

const (
	MemberRoleOwner       MemberRole = "owner"
	MemberRoleAdmin       MemberRole = "admin"
	MemberRoleDesigner    MemberRole = "designer"
	MemberRoleProcurement MemberRole = "procurement"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleDesigner, MemberRoleProcurement:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may invite or remove studio members.
func (r MemberRole) CanManageMembers() bool {
	return r == MemberRoleOwner || r == MemberRoleAdmin
}
