package utils

import "github.com/tuonghuynh11/HealthAppAPI/models"

// Caller is the authenticated identity taken from the access token.
type Caller struct {
	ID     uint
	Role   models.UserRole
	Verify models.UserVerifyStatus
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// CanAccess decides ownership for catalog-or-owned resources:
// admins only touch system rows (no owner), users only touch their own rows.
func CanAccess(owner *uint, c Caller) bool {
	if c.IsAdmin() {
		return owner == nil
	}
	return owner != nil && *owner == c.ID
}

// OwnerOf is the owner to stamp on a new resource created by c.
func OwnerOf(c Caller) *uint {
	if c.IsAdmin() {
		return nil
	}
	id := c.ID
	return &id
}
