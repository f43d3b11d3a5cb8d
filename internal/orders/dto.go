package orders

// CreateOrderRequest describes a new order to fulfill.
type CreateOrderRequest struct {
	Customer CreateCustomerRequest    `json:"customer" validate:"required"`
	Items    []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateCustomerRequest carries recipient details.
type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Phone        string  `json:"phone" validate:"required,max=40"`
	Address      string  `json:"address" validate:"required,max=240"`
	DeliveryZone *string `json:"delivery_zone,omitempty" validate:"omitempty,max=60"`
}

// CreateOrderItemRequest is one requested product line.
type CreateOrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
	LineOrder int   `json:"line_order" validate:"gte=0"`
}
