package picking

import (
	"errors"
	"fmt"
)

var (
	// ErrBarcodeMismatch indicates the scanned code does not equal the
	// expected item's barcode. Recoverable; the picker just scans again.
	ErrBarcodeMismatch = errors.New("picking: barcode mismatch")
	// ErrUnknownBarcode indicates the code belongs to no catalog product.
	// Presented to the picker exactly like a mismatch.
	ErrUnknownBarcode = errors.New("picking: unknown barcode")
	// ErrInvalidQuantity indicates a non-positive confirmed quantity.
	ErrInvalidQuantity = errors.New("picking: quantity must be a positive integer")
	// ErrLowConfidence marks a camera decode whose median per-character error
	// is above threshold. Never shown to the user; the frame is dropped.
	ErrLowConfidence = errors.New("picking: decode confidence below threshold")
	// ErrNoErrorSamples is returned for a decode carrying zero error samples.
	// Policy: such decodes are rejected like low-confidence ones.
	ErrNoErrorSamples = errors.New("picking: decode has no error samples")
	// ErrNotCandidate indicates a resolution choice outside the ambiguous set.
	ErrNotCandidate = errors.New("picking: chosen product does not carry this barcode")
)

// MismatchError carries both codes for inline display next to the scanner.
type MismatchError struct {
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("picking: barcode mismatch: expected %s, got %s", e.Expected, e.Got)
}

// Unwrap lets errors.Is match ErrBarcodeMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrBarcodeMismatch
}
