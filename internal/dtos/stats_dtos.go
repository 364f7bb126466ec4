package dtos

import "time"

// Stats is one aggregate snapshot of the signatories table.
//
// Organizations + Individuals == Total; Verified and RecentSignatures never
// exceed Total.
type Stats struct {
	Total            int            `json:"total"`
	Verified         int            `json:"verified"`
	Organizations    int            `json:"organizations"`
	Individuals      int            `json:"individuals"`
	RecentSignatures int            `json:"recentSignatures"`
	Countries        int            `json:"countries"`
	CountryBreakdown map[string]int `json:"countryBreakdown"`
	TopOrganizations []OrgCount     `json:"topOrganizations"`
	GeneratedAt      time.Time      `json:"generatedAt"`
}

type OrgCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Success bool  `json:"success"`
	Data    Stats `json:"data"`
}
