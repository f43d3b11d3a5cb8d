package picking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		warn     bool
		wantErr  error
	}{
		{name: "zero rejected", quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative rejected", quantity: -3, wantErr: ErrInvalidQuantity},
		{name: "one accepted", quantity: 1},
		{name: "threshold accepted without warning", quantity: 1000},
		{name: "above threshold warns", quantity: 1001, warn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn, err := ValidateQuantity(tt.quantity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.warn, warn)
		})
	}
}

func TestQuickPicks(t *testing.T) {
	require.Equal(t, []int{1, 6, 12, 24}, QuickPicks())
}
