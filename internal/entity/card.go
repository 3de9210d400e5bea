package entity

import (
	"time"

	"github.com/google/uuid"
)

// Card is a stored visiting card. JSON keys follow the card web client.
type Card struct {
	ID        uuid.UUID  `json:"_id"`
	Name      string     `json:"name"`
	Company   string     `json:"company"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Website   string     `json:"website"`
	City      string     `json:"city"`
	IsDeleted bool       `json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CardFields is the editable part of a card.
type CardFields struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	City    string `json:"city"`
}

// Fields returns the editable part of c.
func (c *Card) Fields() CardFields {
	return CardFields{
		Name:    c.Name,
		Company: c.Company,
		Phone:   c.Phone,
		Email:   c.Email,
		Website: c.Website,
		City:    c.City,
	}
}

// CardCounts summarizes the cards table.
type CardCounts struct {
	Total   int `json:"total_docs"`
	Active  int `json:"active_docs"`
	Deleted int `json:"deleted_docs"`
}
