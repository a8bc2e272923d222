// Package rigfit decides whether a site's physical constraints admit a guest's
// equipment. It is a pure predicate: no I/O, no failure modes.
package rigfit

import (
	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

type EquipmentKind string

const (
	KindMotorhome     EquipmentKind = "motorhome"
	KindTravelTrailer EquipmentKind = "travel_trailer"
	KindCampervan     EquipmentKind = "campervan"
	KindTent          EquipmentKind = "tent"
	KindCarCamping    EquipmentKind = "car_camping"
)

// EquipmentProfile is the guest-supplied rig description. Length is in feet
// and only meaningful for rig kinds.
type EquipmentProfile struct {
	Kind   EquipmentKind
	Length int
}

// IsRig reports whether the equipment kind is subject to length checks.
func IsRig(kind EquipmentKind) bool {
	switch kind {
	case KindMotorhome, KindTravelTrailer, KindCampervan:
		return true
	}
	return false
}

// Compatible reports whether the site admits the given equipment profile.
//
// A nil or unrecognized profile is treated as "no constraint" and passes: when
// equipment data is absent we would rather offer the site than hide it, and the
// availability result flags the fit as unconfirmed. Non-rig kinds bypass length
// checks and match any site that accepts walk-in guests. Rig kinds require an
// RV-capable site whose max rig length covers the equipment.
func Compatible(s site.Site, p *EquipmentProfile) bool {
	if p == nil {
		return true
	}

	if IsRig(p.Kind) {
		return s.RVCapable() && s.MaxRigLength >= p.Length
	}

	switch p.Kind {
	case KindTent, KindCarCamping:
		return s.AcceptsWalkIn
	}

	// Unknown kind: permissive default, same as a missing profile.
	return true
}
