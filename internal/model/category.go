package model

// Category groups products for listing and reporting.
type Category struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Audit       Audit  `json:"audit"`
}

func (c *Category) EntityID() string    { return c.ID }
func (c *Category) Scope() string       { return c.CompanyID }
func (c *Category) DisplayName() string { return c.Name }
func (c *Category) ObjectKey() string   { return "" }
func (c *Category) Lifecycle() *Audit   { return &c.Audit }
