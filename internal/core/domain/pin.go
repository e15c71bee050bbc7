package domain

import "math/big"

const (
	// PinBase and PinModulus are the fixed parameters of the PIN digest.
	PinBase    = 5
	PinModulus = 10007

	// MinPin and MaxPin bound the PINs an operator may choose.
	MinPin = 2
	MaxPin = 9999
)

// EncryptPin turns a PIN into its stored digest.
//
// The digest is computed with a plain square-and-multiply loop over base 5 in which
// neither the squared base nor the running product is reduced; only the final
// product is taken modulo 10007. Digests already persisted in account files were
// produced by this exact sequence, so it must not be replaced with a reducing
// modular exponentiation. The scheme is deliberately weak.
func EncryptPin(pin int) (int, error) {
	if !ValidPin(pin) {
		return 0, ErrInvalidPin
	}

	g := big.NewInt(PinBase)
	product := big.NewInt(1)
	for e := pin; e > 0; e >>= 1 {
		if e%2 == 1 {
			product.Mul(product, g)
		}
		g.Mul(g, g)
	}

	return int(product.Mod(product, big.NewInt(PinModulus)).Int64()), nil
}

// ValidPin reports whether pin is inside the range an operator may choose.
func ValidPin(pin int) bool {
	return pin >= MinPin && pin <= MaxPin
}
