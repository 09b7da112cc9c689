// Package decimal implements the protocol's 18-digit fixed-point unsigned
// arithmetic. Every monetary and rate quantity in the core is a Decimal.
//
// Values are non-negative, checked: overflow, underflow, and division by
// zero return a *fault.Fault of category fault.Overflow rather than
// panicking, so the engine packages can surface them as ordinary errors.
package decimal

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/covenant-finance/covenant/native/fault"
)

// Wad is the fixed-point scale: 18 fractional digits.
const Wad = 1_000_000_000_000_000_000

var wad = uint256.NewInt(Wad)

// Decimal is a non-negative fixed-point number with 18 fractional digits,
// backed by a 256-bit unsigned integer so that widen-then-divide operations
// never need a second, wider intermediate type to avoid overflow.
type Decimal struct {
	raw *uint256.Int
}

// Zero is the additive identity.
func Zero() Decimal { return Decimal{raw: new(uint256.Int)} }

// One is the multiplicative identity.
func One() Decimal { return Decimal{raw: new(uint256.Int).Set(wad)} }

// FromUint64 builds a Decimal representing the integer n.
func FromUint64(n uint64) Decimal {
	return Decimal{raw: new(uint256.Int).Mul(uint256.NewInt(n), wad)}
}

// FromTokenAmount converts a raw on-chain token amount at the given number
// of decimals into a protocol Decimal. Exact: no precision is lost because
// the scale factor always divides Wad evenly (decimals <= 18).
func FromTokenAmount(amount uint64, decimals uint8) (Decimal, error) {
	if decimals > 18 {
		return Decimal{}, fault.New(fault.InvalidArgument, "decimals must be 18 or less, got %d", decimals)
	}
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return FromUint64(amount).DivUint64(scale.Uint64())
}

// ToTokenAmount converts this Decimal into a raw on-chain token amount at the
// given number of decimals, truncating any precision beyond that scale.
func (d Decimal) ToTokenAmount(decimals uint8) (uint64, error) {
	if decimals > 18 {
		return 0, fault.New(fault.InvalidArgument, "decimals must be 18 or less, got %d", decimals)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	if scale.Cmp(big.NewInt(Wad)) > 0 {
		return 0, fault.New(fault.InvalidArgument, "too many decimals")
	}
	divisor := new(big.Int).Div(big.NewInt(Wad), scale)
	quotient := new(big.Int).Div(d.raw.ToBig(), divisor)
	if !quotient.IsUint64() {
		return 0, fault.New(fault.Overflow, "overflow converting to token amount")
	}
	return quotient.Uint64(), nil
}

// IsZero reports whether this Decimal is exactly zero.
func (d Decimal) IsZero() bool { return d.raw == nil || d.raw.IsZero() }

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d Decimal) Cmp(o Decimal) int { return d.rawOrZero().Cmp(o.rawOrZero()) }

// LessThan reports whether d < o.
func (d Decimal) LessThan(o Decimal) bool { return d.Cmp(o) < 0 }

// GreaterThan reports whether d > o.
func (d Decimal) GreaterThan(o Decimal) bool { return d.Cmp(o) > 0 }

// Min returns the smaller of d and o.
func Min(d, o Decimal) Decimal {
	if d.LessThan(o) {
		return d
	}
	return o
}

func (d Decimal) rawOrZero() *uint256.Int {
	if d.raw == nil {
		return new(uint256.Int)
	}
	return d.raw
}

// Add returns d + o, faulting on overflow.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	sum, overflow := new(uint256.Int).AddOverflow(d.rawOrZero(), o.rawOrZero())
	if overflow {
		return Decimal{}, fault.New(fault.Overflow, "overflow in add")
	}
	return Decimal{raw: sum}, nil
}

// Sub returns d - o, faulting if the result would be negative.
func (d Decimal) Sub(o Decimal) (Decimal, error) {
	diff, underflow := new(uint256.Int).SubOverflow(d.rawOrZero(), o.rawOrZero())
	if underflow {
		return Decimal{}, fault.New(fault.Overflow, "overflow in sub")
	}
	return Decimal{raw: diff}, nil
}

// SaturatingSub returns max(d - o, 0), never faulting.
func (d Decimal) SaturatingSub(o Decimal) Decimal {
	diff, underflow := new(uint256.Int).SubOverflow(d.rawOrZero(), o.rawOrZero())
	if underflow {
		return Zero()
	}
	return Decimal{raw: diff}
}

// Mul returns d * o, faulting on overflow.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	result, overflow := mulDivOverflow(d.rawOrZero(), o.rawOrZero(), wad)
	if overflow {
		return Decimal{}, fault.New(fault.Overflow, "overflow in mul")
	}
	return Decimal{raw: result}, nil
}

// MulUint64 returns d * n, faulting on overflow.
func (d Decimal) MulUint64(n uint64) (Decimal, error) {
	result, overflow := new(uint256.Int).MulOverflow(d.rawOrZero(), uint256.NewInt(n))
	if overflow {
		return Decimal{}, fault.New(fault.Overflow, "overflow in mul")
	}
	return Decimal{raw: result}, nil
}

// Div returns d / o, faulting on division by zero or overflow.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.IsZero() {
		return Decimal{}, fault.New(fault.Overflow, "division by zero")
	}
	result, overflow := mulDivOverflow(d.rawOrZero(), wad, o.rawOrZero())
	if overflow {
		return Decimal{}, fault.New(fault.Overflow, "overflow in div")
	}
	return Decimal{raw: result}, nil
}

// DivUint64 returns d / n, faulting on division by zero.
func (d Decimal) DivUint64(n uint64) (Decimal, error) {
	if n == 0 {
		return Decimal{}, fault.New(fault.Overflow, "division by zero")
	}
	return Decimal{raw: new(uint256.Int).Div(d.rawOrZero(), uint256.NewInt(n))}, nil
}

// Pow computes d^exp by exponentiation by squaring, O(log exp).
func (d Decimal) Pow(exp uint64) (Decimal, error) {
	base := d
	result := One()
	if exp%2 != 0 {
		result = base
	}
	for exp > 0 {
		exp /= 2
		var err error
		base, err = base.Mul(base)
		if err != nil {
			return Decimal{}, err
		}
		if exp%2 != 0 {
			result, err = result.Mul(base)
			if err != nil {
				return Decimal{}, err
			}
		}
	}
	return result, nil
}

// Take zeroes d in place and returns its prior value, mirroring the
// original's "take the balance and replace it with zero" accounting idiom
// used when a claimable reward is paid out.
func (d *Decimal) Take() Decimal {
	val := *d
	*d = Zero()
	return val
}

func (d Decimal) String() string {
	raw := d.rawOrZero().ToBig()
	whole := new(big.Int).Div(raw, big.NewInt(Wad))
	frac := new(big.Int).Mod(raw, big.NewInt(Wad))
	return fmt.Sprintf("%s.%018s", whole.String(), frac.String())
}

// MarshalJSON renders d as a quoted decimal string, avoiding float64
// precision loss for callers reading protocol state over HTTP.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// MarshalBinary encodes d as a fixed 32-byte big-endian integer, letting
// Decimal be stored directly by gob-based persistence layers.
func (d Decimal) MarshalBinary() ([]byte, error) {
	b := d.rawOrZero().Bytes32()
	return b[:], nil
}

// UnmarshalBinary decodes the format written by MarshalBinary.
func (d *Decimal) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fault.New(fault.InvalidArgument, "decimal: expected 32 bytes, got %d", len(data))
	}
	var b [32]byte
	copy(b[:], data)
	d.raw = new(uint256.Int).SetBytes32(b[:])
	return nil
}

// mulDivOverflow computes x*y/d with a 512-bit intermediate product so that
// the multiply never silently truncates before the divide, matching the
// original's widened-then-divided Decimal multiplication.
func mulDivOverflow(x, y, d *uint256.Int) (*uint256.Int, bool) {
	if d.IsZero() {
		return nil, true
	}
	product := new(big.Int).Mul(x.ToBig(), y.ToBig())
	quotient := new(big.Int).Div(product, d.ToBig())
	result, overflow := uint256.FromBig(quotient)
	return result, overflow
}
