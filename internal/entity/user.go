package entity

import "github.com/volunhub/backend/pkg/enum"

type GlobalRole string

var (
	RoleVolunteer = enum.New(GlobalRole("volunteer"))
	RolePromoter  = enum.New(GlobalRole("promoter"))
	RoleAdmin     = enum.New(GlobalRole("admin"))
	RolePartner   = enum.New(GlobalRole("partner"))
)

// GlobalAdminRoles are roles allowed to pass the global admin gate.
var GlobalAdminRoles = []GlobalRole{RoleAdmin}

// PromoterRoles are roles allowed to create opportunities.
var PromoterRoles = []GlobalRole{RolePromoter, RoleAdmin}

// RegisterableRoles are roles a user can self-assign at registration.
var RegisterableRoles = []GlobalRole{RoleVolunteer, RolePromoter}

type User struct {
	Base

	Name           string `gorm:"unique"`
	Email          string `gorm:"unique"`
	HashedPassword string
	Role           GlobalRole

	// Points is the redeemable balance. It is only mutated through the
	// guarded IncreasePoints/DecreasePoints repository methods and can
	// never go negative.
	Points uint64
}
