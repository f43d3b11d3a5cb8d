package picking

// LargeQuantityThreshold is the point past which a confirmed quantity earns a
// non-blocking "are you sure?" warning. It is a soft guard, never a hard cap.
const LargeQuantityThreshold = 1000

// QuickPicks are shortcut quantities offered to the picker. They are
// conveniences only; any positive integer is a valid input.
func QuickPicks() []int {
	return []int{1, 6, 12, 24}
}

// ValidateQuantity checks a confirmed scan quantity. It returns whether the
// value deserves a large-quantity warning, and ErrInvalidQuantity for values
// below one. Cancellation is expressed by never calling apply at all.
func ValidateQuantity(quantity int) (warn bool, err error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}
	return quantity > LargeQuantityThreshold, nil
}
