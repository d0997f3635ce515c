package dispatch

import (
	"slices"

	"jobdispatch/internal/pkg/errs"
)

// Config enumerates the caller roles the facade recognises and which of them may list
// every job. It replaces any ambient role lookup.
type Config struct {
	Roles        []string
	ListAllRoles []string
}

// DefaultConfig recognises admin, superadmin, customer and translator; the two admin roles
// may list all jobs.
func DefaultConfig() Config {
	return Config{
		Roles:        []string{"admin", "superadmin", "customer", "translator"},
		ListAllRoles: []string{"admin", "superadmin"},
	}
}

// Validate requires at least one role and every list-all role to be a recognised role.
func (c Config) Validate() error {
	if len(c.Roles) == 0 {
		return errs.NewValueIsRequiredError("roles")
	}
	for _, role := range c.Roles {
		if role == "" {
			return errs.NewValueIsInvalidError("roles")
		}
	}
	for _, role := range c.ListAllRoles {
		if !slices.Contains(c.Roles, role) {
			return errs.NewValueIsInvalidError("list_all_roles")
		}
	}
	return nil
}

// IsRecognised reports whether role is one of the configured roles.
func (c Config) IsRecognised(role string) bool {
	return slices.Contains(c.Roles, role)
}

// CanListAll reports whether role may list every job.
func (c Config) CanListAll(role string) bool {
	return slices.Contains(c.ListAllRoles, role)
}
