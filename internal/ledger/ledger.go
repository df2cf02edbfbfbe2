// Package ledger owns the sponsor, student and allocation entities and
// enforces the money-consistency rules on every mutation. All derived fields
// (sponsor kind, deposit money, spent amount, allocated money) are written
// here and nowhere else.
package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// SponsorInput is what a caller may set on a sponsor. Derived and
// ledger-owned fields (kind, deposit money, spent amount) are absent on
// purpose.
type SponsorInput struct {
	FullName         string
	PhoneNumber      string
	IsOrganization   bool
	OrganizationName *string
	AmountSelection  models.AmountSelection
	CustomAmount     *decimal.Decimal
	Progress         models.Progress
}

type StudentInput struct {
	FullName      string
	Degree        models.Degree
	ContractPrice decimal.Decimal
	UniversityID  uint
}

// Totals is the read-side payments aggregation.
type Totals struct {
	TotalPaid      decimal.Decimal
	TotalRequested decimal.Decimal
	TotalNeeded    decimal.Decimal
}

// UpsertSponsor creates a sponsor when id is zero, otherwise updates the
// existing one. Validation and derivation happen in a fixed order: kind from
// the organization flag, the organization-name rule, then pledge resolution.
// SpentAmount is zero for new sponsors and preserved on update.
func (e *Engine) UpsertSponsor(ctx context.Context, id uint, in SponsorInput) (*models.Sponsor, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperr.Validation("full_name", "full name is required")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return nil, apperr.Validation("phone_number", "phone number is required")
	}

	kind := models.KindIndividual
	if in.IsOrganization {
		kind = models.KindOrganization
	}

	orgName := normalized(in.OrganizationName)
	if in.IsOrganization && orgName == nil {
		return nil, apperr.Validation("organization_name", "organization name is required for organization sponsors")
	}
	if !in.IsOrganization && orgName != nil {
		return nil, apperr.Validation("organization_name", "organization name must be empty for individual sponsors")
	}

	deposit, custom, err := ResolvePledge(in.AmountSelection, in.CustomAmount)
	if err != nil {
		return nil, err
	}

	progress := in.Progress
	if progress == "" {
		progress = models.ProgressNew
	}
	if !progress.Valid() {
		return nil, apperr.Validation("progress", "unknown progress state")
	}

	var sponsor models.Sponsor
	if id != 0 {
		if err := e.db.WithContext(ctx).First(&sponsor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("sponsor")
			}
			return nil, err
		}
		// A pledge can never shrink below what is already allocated;
		// otherwise the remaining balance would go negative.
		if deposit.LessThan(sponsor.SpentAmount) {
			return nil, apperr.Validation("amount_selection", "pledge cannot be lower than the amount already spent")
		}
	} else {
		sponsor.SpentAmount = decimal.Zero
	}

	sponsor.FullName = in.FullName
	sponsor.PhoneNumber = in.PhoneNumber
	sponsor.IsOrganization = in.IsOrganization
	sponsor.OrganizationName = orgName
	sponsor.AmountSelection = in.AmountSelection
	sponsor.CustomAmount = custom
	sponsor.DepositMoney = deposit
	sponsor.Progress = progress
	sponsor.Kind = kind

	if err := e.db.WithContext(ctx).Save(&sponsor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("phone_number")
		}
		return nil, err
	}
	return &sponsor, nil
}

// UpsertStudent creates or updates a student. AllocatedMoney is not
// caller-settable: zero on create, untouched on update.
func (e *Engine) UpsertStudent(ctx context.Context, id uint, in StudentInput) (*models.Student, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, apperr.Validation("full_name", "full name is required")
	}
	if !in.Degree.Valid() {
		return nil, apperr.Validation("degree", "degree must be bachelor or master")
	}
	if in.ContractPrice.IsNegative() {
		return nil, apperr.Validation("contract_price", "contract price must not be negative")
	}

	var university models.University
	if err := e.db.WithContext(ctx).First(&university, in.UniversityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("university")
		}
		return nil, err
	}

	var student models.Student
	if id != 0 {
		if err := e.db.WithContext(ctx).First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("student")
			}
			return nil, err
		}
	} else {
		student.AllocatedMoney = decimal.Zero
	}

	student.FullName = in.FullName
	student.Degree = in.Degree
	student.ContractPrice = in.ContractPrice
	student.UniversityID = in.UniversityID

	if err := e.db.WithContext(ctx).Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// RecordAllocation disburses amount from a sponsor to a student. The three
// writes (sponsor spent amount, student allocated money, allocation row)
// commit in one transaction or not at all. The sponsor update carries the
// remaining-balance guard in its WHERE clause, so two concurrent allocations
// can never both pass the check or lose an increment.
func (e *Engine) RecordAllocation(ctx context.Context, studentID, sponsorID uint, amount decimal.Decimal) (*models.Allocation, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation("amount", "allocation amount must be positive")
	}

	allocation := models.Allocation{
		StudentID: studentID,
		SponsorID: sponsorID,
		Amount:    amount,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The decimal parameter binds as text; CAST keeps the balance
		// comparison numeric on both postgres and sqlite.
		res := tx.Model(&models.Sponsor{}).
			Where("id = ? AND deposit_money - spent_amount >= CAST(? AS NUMERIC)", sponsorID, amount).
			Update("spent_amount", gorm.Expr("spent_amount + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Sponsor{}).Where("id = ?", sponsorID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("sponsor")
			}
			return apperr.ErrInsufficientBalance
		}

		res = tx.Model(&models.Student{}).
			Where("id = ?", studentID).
			Update("allocated_money", gorm.Expr("allocated_money + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("student")
		}

		return tx.Create(&allocation).Error
	})
	if err != nil {
		var validation *apperr.ValidationError
		var notFound *apperr.NotFoundError
		if errors.As(err, &validation) || errors.As(err, &notFound) || errors.Is(err, apperr.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, &apperr.TransactionFailure{Err: err}
	}
	return &allocation, nil
}

// TotalPayments recomputes the platform totals on demand.
func (e *Engine) TotalPayments(ctx context.Context) (Totals, error) {
	var totals Totals

	err := e.db.WithContext(ctx).Model(&models.Sponsor{}).
		Select("COALESCE(SUM(deposit_money), 0)").Row().Scan(&totals.TotalPaid)
	if err != nil {
		return Totals{}, err
	}
	err = e.db.WithContext(ctx).Model(&models.Student{}).
		Select("COALESCE(SUM(contract_price), 0)").Row().Scan(&totals.TotalRequested)
	if err != nil {
		return Totals{}, err
	}

	totals.TotalNeeded = totals.TotalRequested.Sub(totals.TotalPaid)
	return totals, nil
}

func (e *Engine) Sponsors(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	if err := e.db.WithContext(ctx).Order("id").Find(&sponsors).Error; err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (e *Engine) Sponsor(ctx context.Context, id uint) (*models.Sponsor, error) {
	var sponsor models.Sponsor
	if err := e.db.WithContext(ctx).First(&sponsor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sponsor")
		}
		return nil, err
	}
	return &sponsor, nil
}

func (e *Engine) DeleteSponsor(ctx context.Context, id uint) error {
	res := e.db.WithContext(ctx).Delete(&models.Sponsor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("sponsor")
	}
	return nil
}

func (e *Engine) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := e.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (e *Engine) Student(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := e.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("student")
		}
		return nil, err
	}
	return &student, nil
}

func (e *Engine) DeleteStudent(ctx context.Context, id uint) error {
	res := e.db.WithContext(ctx).Delete(&models.Student{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("student")
	}
	return nil
}

func (e *Engine) Allocations(ctx context.Context) ([]models.Allocation, error) {
	var allocations []models.Allocation
	if err := e.db.WithContext(ctx).Order("id").Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

func normalized(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
