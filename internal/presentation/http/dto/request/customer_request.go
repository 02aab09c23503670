package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Phone        string  `json:"phone" binding:"required"`
	Name         string  `json:"name" binding:"required,max=255"`
	Measurements *string `json:"measurements"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Measurements *string `json:"measurements"`
}
