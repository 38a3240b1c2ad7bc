package model

// Kind names one recyclable collection. The value doubles as the suffix of the
// entity_updated event topic and as the recycle-bin URL segment.
type Kind string

const (
	KindCompany       Kind = "companies"
	KindCategory      Kind = "categories"
	KindProduct       Kind = "products"
	KindPaymentMethod Kind = "payment-methods"
)

var allKinds = []Kind{KindCompany, KindCategory, KindProduct, KindPaymentMethod}

func Kinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}
