package enums

import "fmt"

// UserRole distinguishes shoppers from the two seller tiers.
type UserRole string

const (
	UserRoleCustomer   UserRole = "customer"
	UserRoleRetailer   UserRole = "retailer"
	UserRoleWholesaler UserRole = "wholesaler"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleRetailer,
	UserRoleWholesaler,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsSeller reports whether the role may list products.
func (r UserRole) IsSeller() bool {
	return r == UserRoleRetailer || r == UserRoleWholesaler
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
