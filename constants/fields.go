package constants

// WebsiteNotFound is the website sentinel expected by the card API consumers.
const WebsiteNotFound = "-"

// Card field keys, in export column order.
const (
	FieldName    = "name"
	FieldCompany = "company"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldWebsite = "website"
	FieldCity    = "city"
)

// ContactFieldKeys lists the six contact keys in export column order.
var ContactFieldKeys = []string{FieldName, FieldCompany, FieldPhone, FieldEmail, FieldWebsite, FieldCity}

// MaxFieldLength bounds any single stored contact field.
const MaxFieldLength = 256
