package model

import (
	"fmt"
	"strings"
)

// Currency is a supported ISO currency code.
type Currency string

const (
	USD Currency = "USD"
	IDR Currency = "IDR"
)

// DefaultCurrency is used when a goal is created without a currency.
const DefaultCurrency = USD

// CurrencyInfo holds display metadata for a currency.
type CurrencyInfo struct {
	Code      Currency
	Symbol    string
	Name      string
	Precision int
}

// Currencies lists every supported currency in display order.
var Currencies = []CurrencyInfo{
	{Code: USD, Symbol: "$", Name: "US Dollar", Precision: 2},
	{Code: IDR, Symbol: "Rp", Name: "Indonesian Rupiah", Precision: 0},
}

// Info returns display metadata, falling back to USD for unknown codes.
func (c Currency) Info() CurrencyInfo {
	for _, ci := range Currencies {
		if ci.Code == c {
			return ci
		}
	}
	return Currencies[0]
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	for _, ci := range Currencies {
		if ci.Code == c {
			return true
		}
	}
	return false
}

// OrDefault returns c, or DefaultCurrency when c is empty.
func (c Currency) OrDefault() Currency {
	if c == "" {
		return DefaultCurrency
	}
	return c
}

// ParseCurrency parses a currency code case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}
