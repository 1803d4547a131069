package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// PaymentCredential holds card details accepted for a charge attempt.
// It can only be obtained through NewPaymentCredential, so a value of this
// type is always well-formed.
type PaymentCredential struct {
	CardNumber string
	Expiry     string
	CVV        string
}

// NewPaymentCredential validates raw card input. The first violated field is
// reported as a ValidationError.
func NewPaymentCredential(cardNumber, expiry, cvv string) (*PaymentCredential, error) {
	if !cardNumberPattern.MatchString(cardNumber) {
		return nil, domainErrors.NewValidation("card_number", "card number must be exactly 16 digits")
	}
	if !expiryPattern.MatchString(expiry) {
		return nil, domainErrors.NewValidation("expiry_date", "invalid expiry date format (MM/YY)")
	}
	if !cvvPattern.MatchString(cvv) {
		return nil, domainErrors.NewValidation("cvv", "invalid CVV format")
	}
	return &PaymentCredential{CardNumber: cardNumber, Expiry: expiry, CVV: cvv}, nil
}

// LastFour returns the trailing four digits of the card number.
func (c *PaymentCredential) LastFour() string {
	return c.CardNumber[len(c.CardNumber)-4:]
}

// ExpiryMonth returns the MM part of the expiry.
func (c *PaymentCredential) ExpiryMonth() string {
	return strings.SplitN(c.Expiry, "/", 2)[0]
}

// ExpiryYear returns the YY part of the expiry expanded to a full year.
func (c *PaymentCredential) ExpiryYear() string {
	return "20" + strings.SplitN(c.Expiry, "/", 2)[1]
}

// PaymentDecision is the gateway's verdict for one charge attempt.
// TransactionID is populated only for accepted charges.
type PaymentDecision struct {
	Accepted      bool
	Message       string
	TransactionID string
}

// CardType identifies a card brand derived from the number prefix.
type CardType string

const (
	CardTypeVisa       CardType = "Visa"
	CardTypeMastercard CardType = "Mastercard"
	CardTypeAmex       CardType = "American Express"
	CardTypeDiscover   CardType = "Discover"
	CardTypeUnknown    CardType = "Unknown"
)

// brandRanges maps numeric card number prefixes to brands. Evaluated in
// order, first match wins.
var brandRanges = []struct {
	brand  CardType
	low    int
	high   int
	digits int
}{
	{CardTypeVisa, 4, 4, 1},
	{CardTypeMastercard, 51, 55, 2},
	{CardTypeMastercard, 2221, 2720, 4},
	{CardTypeAmex, 34, 34, 2},
	{CardTypeAmex, 37, 37, 2},
	{CardTypeDiscover, 6011, 6011, 4},
	{CardTypeDiscover, 65, 65, 2},
}

// CardTypeFromNumber derives card brand from the leading digits of number.
// Non-digit characters are ignored.
func CardTypeFromNumber(number string) CardType {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	for _, r := range brandRanges {
		if len(digits) < r.digits {
			continue
		}
		prefix, err := strconv.Atoi(digits[:r.digits])
		if err != nil {
			return CardTypeUnknown
		}
		if prefix >= r.low && prefix <= r.high {
			return r.brand
		}
	}
	return CardTypeUnknown
}

// PaymentStatus describes settlement state of a captured payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is the persisted audit record of a captured charge, written in the
// same transaction as its Order.
type Payment struct {
	ID             int64
	CardType       CardType
	LastFourDigits string
	ExpiryMonth    string
	ExpiryYear     string
	TransactionID  string
	Status         PaymentStatus
	Amount         decimal.Decimal
	CreatedAt      time.Time
}
