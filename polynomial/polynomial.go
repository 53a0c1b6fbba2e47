// Package polynomial implements polynomials over GF(2^8), the building
// block shared by the Reed-Solomon generator (package polynomial's
// GenerateGenerator) and the Reed-Solomon decoder (polynomial's Decode).
package polynomial

import (
	"fmt"

	"github.com/jalphad/qrforge/gf256"
)

// Polynomial holds coefficients highest-degree first. A zero polynomial is
// represented as the single-element slice {0}; the leading coefficient of
// any longer polynomial is always nonzero.
type Polynomial struct {
	coeffs []byte
}

// New builds a Polynomial from coefficients given highest-degree first,
// trimming any leading zero coefficients (except for the zero polynomial
// itself, which normalises to {0}).
func New(coeffsHighFirst []byte) Polynomial {
	i := 0
	for i < len(coeffsHighFirst)-1 && coeffsHighFirst[i] == 0 {
		i++
	}
	c := make([]byte, len(coeffsHighFirst)-i)
	copy(c, coeffsHighFirst[i:])
	if len(c) == 0 {
		c = []byte{0}
	}
	return Polynomial{coeffs: c}
}

// Monomial returns the single-term polynomial coeff*x^degree.
func Monomial(degree int, coeff byte) Polynomial {
	if degree < 0 {
		panic("polynomial: negative degree")
	}
	if coeff == 0 {
		return New([]byte{0})
	}
	c := make([]byte, degree+1)
	c[0] = coeff
	return New(c)
}

// Degree returns the polynomial's degree. The zero polynomial has degree 0,
// matching the convention that its coefficient list has exactly one entry.
func (p Polynomial) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.coeffs) == 1 && p.coeffs[0] == 0
}

// CoefficientAt returns the coefficient of x^degree, or 0 if degree is
// outside the represented range.
func (p Polynomial) CoefficientAt(degree int) byte {
	index := p.Degree() - degree
	if index < 0 || index >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[index]
}

// Coefficients returns the coefficients highest-degree first. The caller
// must not mutate the returned slice.
func (p Polynomial) Coefficients() []byte {
	return p.coeffs
}

// Eval evaluates the polynomial at x using Horner's method.
func (p Polynomial) Eval(x byte) byte {
	if x == 0 {
		return p.CoefficientAt(0)
	}
	result := p.coeffs[0]
	for _, c := range p.coeffs[1:] {
		result = gf256.Add(gf256.Mul(result, x), c)
	}
	return result
}

// Add returns p+q (pointwise XOR after aligning on the longer length).
func (p Polynomial) Add(q Polynomial) Polynomial {
	if p.IsZero() {
		return q
	}
	if q.IsZero() {
		return p
	}

	shorter, longer := p.coeffs, q.coeffs
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	result := make([]byte, len(longer))
	copy(result, longer)
	offset := len(longer) - len(shorter)
	for i, c := range shorter {
		result[offset+i] = gf256.Add(result[offset+i], c)
	}
	return New(result)
}

// Multiply returns p*q.
func (p Polynomial) Multiply(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return New([]byte{0})
	}
	result := make([]byte, len(p.coeffs)+len(q.coeffs)-1)
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range q.coeffs {
			result[i+j] = gf256.Add(result[i+j], gf256.Mul(a, b))
		}
	}
	return New(result)
}

// MultiplyMonomial returns p * coeff*x^degree.
func (p Polynomial) MultiplyMonomial(degree int, coeff byte) Polynomial {
	if coeff == 0 {
		return New([]byte{0})
	}
	result := make([]byte, len(p.coeffs)+degree)
	for i, a := range p.coeffs {
		result[i] = gf256.Mul(a, coeff)
	}
	return New(result)
}

// MultiplyScalar returns p scaled by a single GF(2^8) coefficient.
func (p Polynomial) MultiplyScalar(coeff byte) Polynomial {
	return p.MultiplyMonomial(0, coeff)
}

// QuotientRemainder divides p by q and returns the quotient and remainder,
// such that p == quotient*q + remainder and remainder.Degree() < q.Degree().
// It returns an error if q is the zero polynomial.
func (p Polynomial) QuotientRemainder(q Polynomial) (quotient, remainder Polynomial, err error) {
	if q.IsZero() {
		return Polynomial{}, Polynomial{}, fmt.Errorf("polynomial: division by zero polynomial")
	}

	quotient = New([]byte{0})
	remainder = p

	inverseLead, err := gf256.Inverse(q.coeffs[0])
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	for !remainder.IsZero() && remainder.Degree() >= q.Degree() {
		scale := gf256.Mul(remainder.coeffs[0], inverseLead)
		degreeDiff := remainder.Degree() - q.Degree()

		term := Monomial(degreeDiff, scale)
		quotient = quotient.Add(term)
		remainder = remainder.Add(q.MultiplyMonomial(degreeDiff, scale))
	}

	return quotient, remainder, nil
}

// Mod returns p mod q: the remainder of polynomial division, the building
// block for both Reed-Solomon encoding (§4.D) and Euclidean-style
// Reed-Solomon decoding (§4.E).
func (p Polynomial) Mod(q Polynomial) (Polynomial, error) {
	_, remainder, err := p.QuotientRemainder(q)
	return remainder, err
}

// String renders the polynomial for debugging, e.g. "[3 0 255]".
func (p Polynomial) String() string {
	return fmt.Sprintf("%v", p.coeffs)
}
