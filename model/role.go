package model

import (
	"fmt"
	"strings"
)

// Role identifies which kind of professional a session belongs to.
type Role string

const (
	RoleNone      Role = ""
	RoleVetShop   Role = "Vet Shop"
	RoleVetDoctor Role = "Vet Doctor"
)

// Roles lists the roles a user can sign up or log in as.
var Roles = []Role{RoleVetShop, RoleVetDoctor}

// ParseRole accepts the display name ("Vet Shop") or a slug ("vet_shop", "shop").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vet shop", "vet_shop", "vetshop", "shop":
		return RoleVetShop, nil
	case "vet doctor", "vet_doctor", "vetdoctor", "doctor":
		return RoleVetDoctor, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// Collection returns the record collection that holds accounts of this role.
func (r Role) Collection() string {
	switch r {
	case RoleVetShop:
		return CollectionVetShops
	case RoleVetDoctor:
		return CollectionVetDoctors
	}
	return ""
}
