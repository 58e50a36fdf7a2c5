package roles

// Role represents the permission tier assigned to a user.
type Role string

const (
	Viewer   Role = "viewer"
	Operator Role = "operator"
	Approver Role = "approver"
	Admin    Role = "admin"
)

// HierarchyLevel orders roles from least to most privileged.
type HierarchyLevel int

const (
	ViewerLevel   HierarchyLevel = 1
	OperatorLevel HierarchyLevel = 2
	ApproverLevel HierarchyLevel = 3
	AdminLevel    HierarchyLevel = 4
)

// Capability is a single permission derived from a role.
type Capability string

const (
	CanView           Capability = "view"
	CanCreateMovement Capability = "create_movement"
	CanApprove        Capability = "approve"
	CanAdminister     Capability = "administer"
)

// CapabilitySet is the full set of capabilities held by an actor.
type CapabilitySet map[Capability]bool

func (c CapabilitySet) Has(capability Capability) bool {
	return c[capability]
}

// Capabilities resolves a role into its capability set. Superusers hold
// every capability regardless of role.
func Capabilities(role Role, isSuperuser bool) CapabilitySet {
	set := CapabilitySet{CanView: true}

	if isSuperuser {
		set[CanCreateMovement] = true
		set[CanApprove] = true
		set[CanAdminister] = true
		return set
	}

	level := role.GetHierarchyLevel()
	if level >= OperatorLevel {
		set[CanCreateMovement] = true
	}
	if level >= ApproverLevel {
		set[CanApprove] = true
	}
	if level >= AdminLevel {
		set[CanAdminister] = true
	}

	return set
}

// GetHierarchyLevel returns the hierarchy level for the role.
func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Viewer:
		return ViewerLevel
	case Operator:
		return OperatorLevel
	case Approver:
		return ApproverLevel
	case Admin:
		return AdminLevel
	default:
		return ViewerLevel
	}
}

// HasPermission reports whether the role meets the required role's level.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

// IsValid reports whether the role is one of the known tiers.
func (r Role) IsValid() bool {
	switch r {
	case Viewer, Operator, Approver, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
