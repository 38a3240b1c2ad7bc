package model

import "fmt"

// PaymentKind classifies how a payment method settles.
type PaymentKind string

const (
	PaymentCash       PaymentKind = "cash"
	PaymentCreditCard PaymentKind = "credit_card"
	PaymentDebitCard  PaymentKind = "debit_card"
	PaymentPix        PaymentKind = "pix"
	PaymentTransfer   PaymentKind = "transfer"
	PaymentOther      PaymentKind = "other"
)

func ParsePaymentKind(raw string) (PaymentKind, error) {
	k := PaymentKind(raw)
	switch k {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentTransfer, PaymentOther:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown payment kind %q", ErrInvalidInput, raw)
}

// PaymentMethod is a way a sale can be settled (PIX, cash, card, ...).
type PaymentMethod struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Name      string      `json:"name"`
	Kind      PaymentKind `json:"kind"`
	Audit     Audit       `json:"audit"`
}

func (p *PaymentMethod) EntityID() string    { return p.ID }
func (p *PaymentMethod) Scope() string       { return p.CompanyID }
func (p *PaymentMethod) DisplayName() string { return p.Name }
func (p *PaymentMethod) ObjectKey() string   { return "" }
func (p *PaymentMethod) Lifecycle() *Audit   { return &p.Audit }
