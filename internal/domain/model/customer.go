package model

// Customer is the shipping identity captured with a checkout request.
// Required-field presence is enforced by the HTTP layer.
type Customer struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Address2 string
	City     string
	Postcode string
	Country  string
}
