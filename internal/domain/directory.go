package domain

type Branch struct {
	ID   int
	Name string
}

type Supplier struct {
	ID      int
	Name    string
	Phone   *string
	Contact *string
	Active  bool
}

type Cashier struct {
	ID     int
	Name   string
	Active bool
}
