package app

// CreateCustomerRequest carries the fields for registering a customer.
type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CreateWarehouseRequest carries the fields for registering a warehouse.
type CreateWarehouseRequest struct {
	Name     string
	Location string
}
