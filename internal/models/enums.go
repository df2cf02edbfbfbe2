package models

import "github.com/shopspring/decimal"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleSponsor Role = "sponsor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleSponsor:
		return true
	}
	return false
}

type Degree string

const (
	DegreeBachelor Degree = "bachelor"
	DegreeMaster   Degree = "master"
)

func (d Degree) Valid() bool {
	return d == DegreeBachelor || d == DegreeMaster
}

type Progress string

const (
	ProgressNew       Progress = "new"
	ProgressInReview  Progress = "in_review"
	ProgressConfirmed Progress = "confirmed"
	ProgressCancelled Progress = "cancelled"
)

func (p Progress) Valid() bool {
	switch p {
	case ProgressNew, ProgressInReview, ProgressConfirmed, ProgressCancelled:
		return true
	}
	return false
}

// SponsorKind is derived from IsOrganization and never set by callers.
type SponsorKind string

const (
	KindOrganization SponsorKind = "organization"
	KindIndividual   SponsorKind = "individual"
)

// AmountSelection is the pledge choice a sponsor picks on the application
// form: one of the fixed tiers, or "custom" with an explicit amount.
type AmountSelection string

const (
	AmountOneMillion    AmountSelection = "1_000_000"
	AmountFiveMillion   AmountSelection = "5_000_000"
	AmountSevenMillion  AmountSelection = "7_000_000"
	AmountTenMillion    AmountSelection = "10_000_000"
	AmountThirtyMillion AmountSelection = "30_000_000"
	AmountCustom        AmountSelection = "custom"
)

var fixedPledges = map[AmountSelection]decimal.Decimal{
	AmountOneMillion:    decimal.NewFromInt(1_000_000),
	AmountFiveMillion:   decimal.NewFromInt(5_000_000),
	AmountSevenMillion:  decimal.NewFromInt(7_000_000),
	AmountTenMillion:    decimal.NewFromInt(10_000_000),
	AmountThirtyMillion: decimal.NewFromInt(30_000_000),
}

func (a AmountSelection) Valid() bool {
	if a == AmountCustom {
		return true
	}
	_, ok := fixedPledges[a]
	return ok
}

// FixedValue returns the pledge value for a fixed tier. The second result is
// false for the custom selection and for unknown values.
func (a AmountSelection) FixedValue() (decimal.Decimal, bool) {
	v, ok := fixedPledges[a]
	return v, ok
}
