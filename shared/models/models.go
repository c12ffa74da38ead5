package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	_, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// DefaultCurrency is the currency every retailer wallet is denominated in
const DefaultCurrency = "INR"

const paisePerRupee = 100

var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money represents monetary amount
type Money struct {
	Amount   int64  `json:"amount"`   // Amount in paise
	Currency string `json:"currency"` // Currency code (INR)
}

// NewMoney creates a new money value
func NewMoney(amount int64, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Paise creates an INR money value from an amount in paise
func Paise(amount int64) Money {
	return NewMoney(amount, DefaultCurrency)
}

// Rupees creates an INR money value from a whole rupee amount
func Rupees(amount int64) Money {
	return NewMoney(amount*paisePerRupee, DefaultCurrency)
}

// FromDecimalRupees converts a decimal rupee amount (as gateways report it) to paise
func FromDecimalRupees(d decimal.Decimal) Money {
	return Paise(d.Shift(2).Round(0).IntPart())
}

// ParseRupees parses a rupee amount such as "150.50"
func ParseRupees(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return FromDecimalRupees(d), nil
}

// Decimal returns the amount in rupees
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -2)
}

// WholeRupees returns the amount in rupees rounded up to the next whole rupee
func (m Money) WholeRupees() int64 {
	return m.Decimal().Ceil().IntPart()
}

// Normalize fills in the default currency when none is set
func (m Money) Normalize() Money {
	if m.Currency == "" {
		m.Currency = DefaultCurrency
	}
	return m
}

// IsZero checks if money is zero
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsPositive checks if money is positive
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// Covers reports whether m is at least other
func (m Money) Covers(other Money) bool {
	return m.Amount >= other.Amount
}

// Add adds two money values (must have same currency)
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{
		Amount:   m.Amount + other.Amount,
		Currency: m.Currency,
	}, nil
}

// Subtract subtracts two money values (must have same currency)
func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{
		Amount:   m.Amount - other.Amount,
		Currency: m.Currency,
	}, nil
}

// String formats the amount in rupees
func (m Money) String() string {
	return m.Decimal().StringFixed(2) + " " + m.Currency
}
