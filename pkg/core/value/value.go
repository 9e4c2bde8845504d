package value

import (
	"errors"
	"math"
	"strconv"
)

// Dendron has a single value domain: signed 64-bit integers. Arithmetic
// wraps on overflow; the two partial operations report errors instead.
var (
	ErrDivideByZero = errors.New("value: division by zero")
	ErrNegativeSqrt = errors.New("value: square root of negative value")
	ErrNotInteger   = errors.New("value: not an integer literal")
	ErrOutOfRange   = errors.New("value: integer literal out of range")
)

// IsInteger reports whether lit is an optionally negative run of decimal digits.
func IsInteger(lit string) bool {
	if len(lit) == 0 {
		return false
	}
	i := 0
	if lit[0] == '-' {
		if len(lit) == 1 {
			return false
		}
		i = 1
	}
	for ; i < len(lit); i++ {
		if lit[i] < '0' || lit[i] > '9' {
			return false
		}
	}
	return true
}

// Parse converts an integer literal.
func Parse(lit string) (int64, error) {
	if !IsInteger(lit) {
		return 0, ErrNotInteger
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, ErrOutOfRange
	}
	return n, nil
}

// Format renders v in decimal.
func Format(v int64) string {
	return strconv.FormatInt(v, 10)
}

func Add(a, b int64) int64 { return a + b }
func Sub(a, b int64) int64 { return a - b }
func Mul(a, b int64) int64 { return a * b }
func Neg(a int64) int64    { return -a }

// Div truncates toward zero. MinInt64 / -1 wraps to MinInt64.
func Div(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	if b == -1 {
		return -a, nil
	}
	return a / b, nil
}

// Sqrt returns floor(sqrt(a)).
func Sqrt(a int64) (int64, error) {
	if a < 0 {
		return 0, ErrNegativeSqrt
	}
	r := int64(math.Sqrt(float64(a)))
	// float64 loses precision above 2^53; settle on the exact floor.
	for r > 0 && r > a/r {
		r--
	}
	for r+1 <= a/(r+1) {
		r++
	}
	return r, nil
}
