package model

// Company is a registered business. Companies are themselves recyclable: the
// scope key of a company equals its own ID once assigned.
type Company struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	CorporateName string `json:"corporate_name"`
	TradeName     string `json:"trade_name,omitempty"`
	CNPJ          string `json:"cnpj,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	LogoKey       string `json:"logo_key,omitempty"`
	Audit         Audit  `json:"audit"`
}

func (c *Company) EntityID() string    { return c.ID }
func (c *Company) Scope() string       { return c.CompanyID }
func (c *Company) DisplayName() string { return c.CorporateName }
func (c *Company) ObjectKey() string   { return c.LogoKey }
func (c *Company) Lifecycle() *Audit   { return &c.Audit }
