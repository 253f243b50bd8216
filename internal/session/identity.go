// Package session owns the lifecycle of issued credentials: the registry of
// active tokens, the structural payload decoder, the single validity
// predicate every guard consults, and the background expiry sweeper.
package session

import (
	"strings"
	"time"
)

// Role is the account tier gating feature access.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleUser    Role = "user"
	RoleTier1   Role = "tier1"
	RoleTier2   Role = "tier2"
	RoleTier3   Role = "tier3"
	RoleTier4   Role = "tier4"
	RoleApplier Role = "applier"
	RoleAdmin   Role = "admin"
)

// Capability names a single gated feature. Handlers check capabilities, never
// raw role values, so adding a tier means touching only the table below.
type Capability string

const (
	CapGenerateResume     Capability = "generate_resume"
	CapViewJobs           Capability = "view_jobs"
	CapApplyJobs          Capability = "apply_jobs"
	CapBookDemo           Capability = "book_demo"
	CapRequestDownload    Capability = "request_download"
	CapModerateJobs       Capability = "moderate_jobs"
	CapModerateInbox      Capability = "moderate_inbox"
	CapManageUsers        Capability = "manage_users"
	CapViewAdminDashboard Capability = "view_admin_dashboard"
)

var capabilityTable = map[Role]map[Capability]bool{
	RoleGuest: {
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleUser: {
		CapGenerateResume:  true,
		CapViewJobs:        true,
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleTier1: {
		CapGenerateResume:  true,
		CapViewJobs:        true,
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleTier2: {
		CapGenerateResume:  true,
		CapViewJobs:        true,
		CapApplyJobs:       true,
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleTier3: {
		CapGenerateResume:  true,
		CapViewJobs:        true,
		CapApplyJobs:       true,
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleTier4: {
		CapGenerateResume:  true,
		CapViewJobs:        true,
		CapApplyJobs:       true,
		CapBookDemo:        true,
		CapRequestDownload: true,
	},
	RoleApplier: {
		CapGenerateResume: true,
		CapViewJobs:       true,
		CapApplyJobs:      true,
	},
	RoleAdmin: {
		CapGenerateResume:     true,
		CapViewJobs:           true,
		CapApplyJobs:          true,
		CapBookDemo:           true,
		CapRequestDownload:    true,
		CapModerateJobs:       true,
		CapModerateInbox:      true,
		CapManageUsers:        true,
		CapViewAdminDashboard: true,
	},
}

// ParseRole normalizes a raw role string. Unknown values map to guest.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser
	case RoleTier1:
		return RoleTier1
	case RoleTier2:
		return RoleTier2
	case RoleTier3:
		return RoleTier3
	case RoleTier4:
		return RoleTier4
	case RoleApplier:
		return RoleApplier
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// Has reports whether the role grants the capability.
func (r Role) Has(cap Capability) bool {
	caps, ok := capabilityTable[r]
	if !ok {
		return false
	}
	return caps[cap]
}

// Identity is the user-facing record decoded from a credential. It is a
// display and bookkeeping hint; authorization always goes through the
// signature-verified claims in the auth middleware.
type Identity struct {
	Subject   string
	Role      Role
	Firstname string
	ExpiresAt time.Time
}

// Expired reports whether the identity's credential has lapsed. A missing
// expiry counts as expired.
func (id *Identity) Expired(now time.Time) bool {
	if id == nil {
		return true
	}
	if id.ExpiresAt.IsZero() {
		return true
	}
	return !id.ExpiresAt.After(now)
}
