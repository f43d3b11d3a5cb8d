package picking

import "github.com/pickdesk/pickdesk/internal/orders"

// Matcher validates a decoded barcode against the item currently being
// picked. Equality is an exact string match against the expected product's
// barcode; there is no retry limit, the picker scans until it matches.
type Matcher struct{}

// Match returns nil when the code satisfies the item, or a *MismatchError
// carrying both codes. It never mutates anything; quantity confirmation and
// the actual apply happen in the controller.
func (Matcher) Match(decoded string, expected orders.Item) error {
	if decoded == expected.Product.Barcode {
		return nil
	}
	return &MismatchError{Expected: expected.Product.Barcode, Got: decoded}
}
