package rigfit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mossyoak/campsite-availability-backend/internal/site"
)

func TestCompatible(t *testing.T) {
	rvSite30 := site.Site{
		ID:            "s1",
		Name:          "A1",
		SiteType:      site.TypeRV,
		MaxRigLength:  30,
		AcceptsWalkIn: true,
	}
	tentSite := site.Site{
		ID:            "s2",
		Name:          "T4",
		SiteType:      site.TypeTent,
		AcceptsWalkIn: true,
	}
	cabinNoWalkIn := site.Site{
		ID:       "s3",
		Name:     "C2",
		SiteType: site.TypeCabin,
	}

	tests := []struct {
		name    string
		site    site.Site
		profile *EquipmentProfile
		want    bool
	}{
		{
			name:    "missing profile is always compatible",
			site:    rvSite30,
			profile: nil,
			want:    true,
		},
		{
			name:    "unknown kind is treated as no constraint",
			site:    tentSite,
			profile: &EquipmentProfile{Kind: "hovercraft", Length: 99},
			want:    true,
		},
		{
			name:    "35ft motorhome excluded from 30ft site",
			site:    rvSite30,
			profile: &EquipmentProfile{Kind: KindMotorhome, Length: 35},
			want:    false,
		},
		{
			name:    "28ft travel trailer fits 30ft site",
			site:    rvSite30,
			profile: &EquipmentProfile{Kind: KindTravelTrailer, Length: 28},
			want:    true,
		},
		{
			name:    "rig length equal to max is allowed",
			site:    rvSite30,
			profile: &EquipmentProfile{Kind: KindCampervan, Length: 30},
			want:    true,
		},
		{
			name:    "rig never fits a tent-only site",
			site:    tentSite,
			profile: &EquipmentProfile{Kind: KindMotorhome, Length: 10},
			want:    false,
		},
		{
			name:    "tent is never excluded on length grounds",
			site:    rvSite30,
			profile: &EquipmentProfile{Kind: KindTent, Length: 99},
			want:    true,
		},
		{
			name:    "tent rejected where walk-in guests are not accepted",
			site:    cabinNoWalkIn,
			profile: &EquipmentProfile{Kind: KindTent},
			want:    false,
		},
		{
			name:    "car camping follows walk-in policy",
			site:    tentSite,
			profile: &EquipmentProfile{Kind: KindCarCamping},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compatible(tt.site, tt.profile))
		})
	}
}
