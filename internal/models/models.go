package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	FirstName string `gorm:"size:30"`
	LastName  string `gorm:"size:30"`
	Role      Role   `gorm:"size:30"`
	Password  string `gorm:"size:255"`
}

type University struct {
	gorm.Model
	Name string `gorm:"size:255;not null"`
}

type Student struct {
	gorm.Model
	FullName      string          `gorm:"size:100;not null"`
	Degree        Degree          `gorm:"size:50;not null"`
	ContractPrice decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	// AllocatedMoney is owned by the ledger engine; it only ever grows
	// through committed allocations.
	AllocatedMoney decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UniversityID   uint            `gorm:"index;not null"`
}

type Sponsor struct {
	gorm.Model
	FullName         string `gorm:"size:250;not null"`
	PhoneNumber      string `gorm:"uniqueIndex;size:30;not null"`
	IsOrganization   bool
	OrganizationName *string          `gorm:"size:250"`
	AmountSelection  AmountSelection  `gorm:"size:30;not null"`
	CustomAmount     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	// DepositMoney and SpentAmount are derived by the ledger engine and are
	// never written through entity-update paths.
	DepositMoney decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SpentAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Progress     Progress        `gorm:"size:30;not null"`
	Kind         SponsorKind     `gorm:"size:50;not null"`
}

// RemainingBalance is the part of the pledge not yet allocated to students.
func (s *Sponsor) RemainingBalance() decimal.Decimal {
	return s.DepositMoney.Sub(s.SpentAmount)
}

// Allocation is a single disbursement event from a sponsor to a student.
// Rows are immutable once created.
type Allocation struct {
	gorm.Model
	StudentID uint            `gorm:"index;not null"`
	SponsorID uint            `gorm:"index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}
