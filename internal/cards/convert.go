package cards

import (
	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

// FieldsToCard maps extracted contact fields onto the stored card fields.
func FieldsToCard(f cardfields.ContactFields) entity.CardFields {
	return entity.CardFields{
		Name:    f.Name,
		Company: f.Company,
		Phone:   f.Phone,
		Email:   f.Email,
		Website: f.Website,
		City:    f.City,
	}
}
