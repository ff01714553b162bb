package core

// PaymentTable holds the display names that identify cash and card payments
// in an order's PaymentType attribute.
type PaymentTable struct {
	Cash string
	Card string
}

// Classify scans an ordered attribute list for the payment method and the
// test-order flag. A PaymentType value matching neither display name yields
// PaymentUnknown; a missing test_order attribute defaults to false.
//
// When the same attribute appears more than once, the last occurrence wins.
func (t PaymentTable) Classify(attrs []Attribute) (PaymentMethod, bool) {
	method := PaymentUnknown
	isTest := false
	for _, a := range attrs {
		switch a.Name {
		case AttrPaymentType:
			switch a.Value {
			case t.Cash:
				method = Cash
			case t.Card:
				method = Card
			default:
				method = PaymentUnknown
			}
		case AttrTestOrder:
			isTest = a.Flag
		}
	}
	return method, isTest
}
