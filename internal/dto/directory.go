package dto

type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type SupplierDTO struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

type CreateCashierRequest struct {
	Name string `json:"name"`
}

type CashierDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
