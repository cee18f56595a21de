package cfg

// Role classifies the structural part a block plays in its function.
type Role uint8

const (
	// RoleNormal is a straight-line block with no other classification.
	RoleNormal Role = iota
	// RoleEntry is the function entry (always bb0).
	RoleEntry
	// RoleReturn diverges normally out of the function.
	RoleReturn
	// RolePanic diverges abnormally or has no normal successor.
	RolePanic
	// RoleCleanup is reachable only through an unwind edge.
	RoleCleanup
	// RoleLoop can reach itself via its successors.
	RoleLoop
	// RoleBranch has two or more outgoing edges.
	RoleBranch
	// RoleMerge has two or more incoming edges.
	RoleMerge
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleEntry:
		return "entry"
	case RoleReturn:
		return "return"
	case RolePanic:
		return "panic"
	case RoleCleanup:
		return "cleanup"
	case RoleLoop:
		return "loop"
	case RoleBranch:
		return "branch"
	case RoleMerge:
		return "merge"
	default:
		return "normal"
	}
}

// Title returns a human-readable heading for the role.
func (r Role) Title() string {
	switch r {
	case RoleEntry:
		return "entry"
	case RoleReturn:
		return "return / success"
	case RolePanic:
		return "panic path"
	case RoleCleanup:
		return "cleanup / unwind"
	case RoleLoop:
		return "loop"
	case RoleBranch:
		return "branch point"
	case RoleMerge:
		return "merge point"
	default:
		return ""
	}
}
