package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gagliardetto/solana-go"
)

// AddressFormat selects how strictly token addresses are checked before
// they are sent to the service.
type AddressFormat string

const (
	AddressAny    AddressFormat = "any"
	AddressSolana AddressFormat = "solana"
)

var (
	ErrEmptyAddress = errors.New("token address is required")
	ErrEmptyName    = errors.New("token name is required")
)

// ParseAddressFormat maps a config value to an AddressFormat.
func ParseAddressFormat(s string) (AddressFormat, error) {
	switch AddressFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", AddressAny:
		return AddressAny, nil
	case AddressSolana:
		return AddressSolana, nil
	default:
		return "", fmt.Errorf("unknown address format %q", s)
	}
}

// ValidateAddress checks addr against the given format.
func ValidateAddress(format AddressFormat, addr string) error {
	if strings.TrimSpace(addr) == "" {
		return ErrEmptyAddress
	}
	if strings.IndexFunc(addr, unicode.IsSpace) >= 0 {
		return fmt.Errorf("token address %q contains whitespace", addr)
	}
	if format == AddressSolana {
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("invalid solana address %q: %w", addr, err)
		}
	}
	return nil
}

// ValidateNew checks the fields of an add request.
func ValidateNew(format AddressFormat, name, addr string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return ValidateAddress(format, addr)
}
