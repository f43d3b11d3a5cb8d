package picking

// ScanRequest submits one scan attempt: either a hand-typed code or the
// decode candidates of a camera frame.
type ScanRequest struct {
	Code       string      `json:"code,omitempty" validate:"omitempty,max=64"`
	Candidates []Candidate `json:"candidates,omitempty" validate:"omitempty,dive"`
}

// QuantityRequest confirms the quantity for a validated scan.
type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// AcceptRequest names the picker taking the order.
type AcceptRequest struct {
	Picker string `json:"picker" validate:"required,max=80"`
}

// ResolveRequest answers an ambiguous-barcode prompt.
type ResolveRequest struct {
	Barcode   string `json:"barcode" validate:"required,max=64"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Remember  bool   `json:"remember"`
}
