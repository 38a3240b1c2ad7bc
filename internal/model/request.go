package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CompanyPayload struct {
	CorporateName string `json:"corporate_name"`
	TradeName     string `json:"trade_name"`
	CNPJ          string `json:"cnpj"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	State         string `json:"state"`
	LogoKey       string `json:"logo_key"`
}

type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	EAN         string `json:"ean"`
	Brand       string `json:"brand"`
	CostCents   int64  `json:"cost_cents"`
	SaleCents   int64  `json:"sale_cents"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

type PaymentMethodPayload struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}
