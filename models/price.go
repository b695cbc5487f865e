package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a submitted listing price. It binds from a JSON number, a JSON
// string or form text, and marshals back as a string without trailing zeros.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) *Price {
	return &Price{Decimal: d}
}

func (p *Price) UnmarshalJSON(b []byte) error {
	return p.Decimal.UnmarshalJSON(b)
}

func (p *Price) UnmarshalText(b []byte) error {
	d, err := decimal.NewFromString(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	p.Decimal = d
	return nil
}

// UnmarshalParam is used by gin's form binding.
func (p *Price) UnmarshalParam(param string) error {
	return p.UnmarshalText([]byte(param))
}
