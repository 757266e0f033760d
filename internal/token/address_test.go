package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nanValue() float64 { return math.NaN() }

func TestParseAddressFormat(t *testing.T) {
	f, err := ParseAddressFormat("")
	require.NoError(t, err)
	assert.Equal(t, AddressAny, f)

	f, err = ParseAddressFormat("Solana")
	require.NoError(t, err)
	assert.Equal(t, AddressSolana, f)

	_, err = ParseAddressFormat("evm")
	assert.Error(t, err)
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		format  AddressFormat
		addr    string
		wantErr bool
	}{
		{"empty", AddressAny, "  ", true},
		{"whitespace inside", AddressAny, "abc def", true},
		{"any accepts evm style", AddressAny, "0x6982508145454Ce325dDbE47a25d4ec3d2311933", false},
		{"solana valid", AddressSolana, "So11111111111111111111111111111111111111112", false},
		{"solana rejects evm", AddressSolana, "0x6982508145454Ce325dDbE47a25d4ec3d2311933", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.format, tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNew(t *testing.T) {
	assert.ErrorIs(t, ValidateNew(AddressAny, "", "abc"), ErrEmptyName)
	assert.ErrorIs(t, ValidateNew(AddressAny, "X", ""), ErrEmptyAddress)
	assert.NoError(t, ValidateNew(AddressAny, "X", "abc"))
}
