package ledger

import (
	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/shopspring/decimal"
)

// ResolvePledge derives a sponsor's effective pledge from the amount
// selection. For the custom selection the explicit amount is required and
// becomes the pledge; for fixed tiers the custom amount is cleared and the
// tier value becomes the pledge. The returned custom pointer is what must be
// stored on the sponsor after the save.
func ResolvePledge(selection models.AmountSelection, custom *decimal.Decimal) (decimal.Decimal, *decimal.Decimal, error) {
	if selection == models.AmountCustom {
		if custom == nil || !custom.IsPositive() {
			return decimal.Zero, nil, apperr.Validation("custom_amount", "a positive custom amount is required for the custom selection")
		}
		return *custom, custom, nil
	}

	fixed, ok := selection.FixedValue()
	if !ok {
		return decimal.Zero, nil, apperr.Validation("amount_selection", "unknown amount selection")
	}
	return fixed, nil, nil
}
