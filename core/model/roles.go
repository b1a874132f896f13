package model

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
)

// RoleRegistry keeps the two privilege sets. Super-admins manage the admin
// set; nothing mutates the super-admin set after construction. A super-admin
// is seeded into the admin set at creation, but the sets are independent
// afterwards: dropping that admin entry would not revoke super-admin status.
//
// Thread-unsafe sets: the execution model serializes calls.
type RoleRegistry struct {
	superAdmins mapset.Set[common.Address]
	admins      mapset.Set[common.Address]
}

func NewRoleRegistry(superAdmins ...common.Address) *RoleRegistry {
	r := &RoleRegistry{
		superAdmins: mapset.NewThreadUnsafeSet[common.Address](),
		admins:      mapset.NewThreadUnsafeSet[common.Address](),
	}
	for _, addr := range superAdmins {
		r.superAdmins.Add(addr)
		r.admins.Add(addr)
	}
	return r
}

func (r *RoleRegistry) IsSuperAdmin(addr common.Address) bool {
	return r.superAdmins.Contains(addr)
}

func (r *RoleRegistry) IsAdmin(addr common.Address) bool {
	return r.admins.Contains(addr)
}

func (r *RoleRegistry) AddAdmin(caller, addr common.Address) error {
	if !r.superAdmins.Contains(caller) {
		return fmt.Errorf("%w: %s is not a super admin", ErrUnauthorized, caller.Hex())
	}
	if r.admins.Contains(addr) {
		return fmt.Errorf("%w: %s is already an admin", ErrBadInput, addr.Hex())
	}
	r.admins.Add(addr)
	return nil
}

func (r *RoleRegistry) RemoveAdmin(caller, addr common.Address) error {
	if !r.superAdmins.Contains(caller) {
		return fmt.Errorf("%w: %s is not a super admin", ErrUnauthorized, caller.Hex())
	}
	if !r.admins.Contains(addr) {
		return fmt.Errorf("%w: %s is not an admin", ErrBadInput, addr.Hex())
	}
	r.admins.Remove(addr)
	return nil
}
