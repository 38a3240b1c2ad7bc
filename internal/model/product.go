package model

// Product is a sellable stock item. Monetary values are integer cents.
type Product struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	EAN         string `json:"ean,omitempty"`
	Brand       string `json:"brand,omitempty"`
	CostCents   int64  `json:"cost_cents"`
	SaleCents   int64  `json:"sale_cents"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	ImageKey    string `json:"image_key,omitempty"`
	Audit       Audit  `json:"audit"`
}

func (p *Product) EntityID() string    { return p.ID }
func (p *Product) Scope() string       { return p.CompanyID }
func (p *Product) DisplayName() string { return p.Name }
func (p *Product) ObjectKey() string   { return p.ImageKey }
func (p *Product) Lifecycle() *Audit   { return &p.Audit }

// BelowMinimum reports whether the current stock sits under the configured
// minimum.
func (p *Product) BelowMinimum() bool {
	return p.MinStock > 0 && p.Stock < p.MinStock
}
