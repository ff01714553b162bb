// Package moysklad is a thin client for the MoySklad remap API, limited to
// the cash-in/cash-out order endpoints the report needs.
package moysklad

import (
	"encoding/json"

	"kassa/internal/core"
)

// Order is one cashin/cashout row as returned by the API. Sum is in minor
// currency units.
type Order struct {
	Name        string      `json:"name"`
	Moment      string      `json:"moment"`
	Sum         int64       `json:"sum"`
	Description string      `json:"description"`
	Applicable  bool        `json:"applicable"`
	Rate        Rate        `json:"rate"`
	Attributes  []Attribute `json:"attributes"`
}

type Rate struct {
	Currency Currency `json:"currency"`
}

type Currency struct {
	Meta Meta `json:"meta"`
}

type Meta struct {
	Href string `json:"href"`
}

// Attribute is a custom order attribute. Values come over the wire either as
// a plain scalar (test_order is a bool) or as an object with a display name
// (PaymentType).
type Attribute struct {
	Name  string         `json:"name"`
	Value AttributeValue `json:"value"`
}

type AttributeValue struct {
	Name string
	Bool bool
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		v.Bool = flag
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v.Name = obj.Name
	return nil
}

// listResponse is the paginated envelope around order rows.
type listResponse struct {
	Rows []Order `json:"rows"`
}

// Raw converts the wire order into the neutral record the normalizer
// consumes, preserving attribute order.
func (o Order) Raw() core.RawTransaction {
	attrs := make([]core.Attribute, 0, len(o.Attributes))
	for _, a := range o.Attributes {
		attrs = append(attrs, core.Attribute{Name: a.Name, Value: a.Value.Name, Flag: a.Value.Bool})
	}
	return core.RawTransaction{
		AmountMinor: o.Sum,
		CurrencyRef: o.Rate.Currency.Meta.Href,
		Attributes:  attrs,
		Moment:      o.Moment,
		OrderID:     o.Name,
		Comment:     o.Description,
		Applicable:  o.Applicable,
	}
}
