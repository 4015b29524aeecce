package entity

import "strings"

// Role is an authorization role tag. The set of roles is closed:
// adding one means adding a constant here and to allRoles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleVerifier Role = "verifier"
)

var allRoles = []Role{RoleAdmin, RoleVendor, RoleVerifier}

// AllRoles returns every known role in declaration order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// RoleNames returns the string form of every known role.
func RoleNames() []string {
	out := make([]string, len(allRoles))
	for i, r := range allRoles {
		out[i] = string(r)
	}
	return out
}

// ParseRole resolves s to a known role. Matching is exact.
func ParseRole(s string) (Role, bool) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// ParseRoles resolves every name, dropping duplicates while keeping order.
// ok is false when the input is empty or contains an unknown name.
func ParseRoles(names []string) (roles []Role, ok bool) {
	if len(names) == 0 {
		return nil, false
	}
	seen := make(map[Role]struct{}, len(names))
	for _, n := range names {
		r, known := ParseRole(strings.TrimSpace(n))
		if !known {
			return nil, false
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	return roles, true
}

// RoleStrings converts roles to their string form, e.g. for storage or tokens.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID    string
	Roles []Role
}

// HasAny reports whether the principal holds at least one of the given roles.
func (p *Principal) HasAny(required ...Role) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}
