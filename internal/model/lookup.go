package model

// FiscalYear is a budget year lookup row.
type FiscalYear struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Source is a funding source lookup row.
type Source struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GrantType is a grant type lookup row.
type GrantType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
