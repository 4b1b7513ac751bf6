package auth

// Effective-role resolution. The primary role comes from trusted claims; the
// override is an admin-only, self-service "view as" substitution scoped to a
// single client tab. The algorithm is the actual safety boundary: a non-admin
// primary role structurally ignores any override, no matter how the override
// store was populated.

// OverrideAllowed reports whether a role may be used as a view-as override
// value. The empty role means "clear the override" and is always allowed.
func OverrideAllowed(r Role) bool {
	switch r {
	case "", RoleFan, RoleCreator, RoleAdmin:
		return true
	default:
		return false
	}
}

// EffectiveRole computes the role governing authorization decisions:
//
//	(primary == admin && override != "") ? override : (primary or guest)
//
// An invalid primary role degrades to guest rather than falling through.
func EffectiveRole(primary, override Role) Role {
	if !primary.Valid() {
		primary = RoleGuest
	}
	if primary == RoleAdmin && override != "" && OverrideAllowed(override) {
		return override
	}
	return primary
}

// OverrideActive reports whether a non-empty override is in effect for the
// given primary role. Only admins can have an active override.
func OverrideActive(primary, override Role) bool {
	return primary == RoleAdmin && override != "" && OverrideAllowed(override)
}
