package polynomial

import (
	"errors"
	"fmt"

	"github.com/jalphad/qrforge/gf256"
)

// ErrUncorrectable reports that a Reed-Solomon block could not be
// corrected: the Euclidean key-equation solve stalled, the number of
// located errors did not match the degree of the error locator, or a
// computed error position fell outside the codeword. The caller treats
// the block as unrecoverable.
var ErrUncorrectable = errors.New("polynomial: reed-solomon block uncorrectable")

// Syndromes evaluates the received codeword (highest-degree coefficient
// first, as produced by New) at alpha^(GeneratorBase+i) for i in
// [0, numECCodewords). A codeword with no errors evaluates to all zeros.
func Syndromes(received []byte, numECCodewords int) []byte {
	p := New(received)
	syndromes := make([]byte, numECCodewords)
	for i := 0; i < numECCodewords; i++ {
		syndromes[i] = p.Eval(gf256.Exp(gf256.GeneratorBase + i))
	}
	return syndromes
}

// HasErrors reports whether any syndrome is nonzero.
func HasErrors(syndromes []byte) bool {
	for _, s := range syndromes {
		if s != 0 {
			return true
		}
	}
	return false
}

// Decode corrects errors in a received Reed-Solomon codeword and returns
// the corrected copy. numECCodewords is t, the number of parity symbols;
// up to floor(t/2) symbol errors can be corrected.
//
// Steps (spec.md §4.E):
//  1. Compute syndromes S_0..S_{t-1}. All-zero means no errors.
//  2. Run the extended Euclidean algorithm on x^t and the syndrome
//     polynomial until the remainder has degree < t/2, yielding the error
//     locator sigma(x) (normalised sigma(0)=1) and error evaluator omega(x).
//  3. Chien search: the roots of sigma give the error locations X_i.
//  4. Forney's formula: the magnitude at each X_i.
//  5. XOR the magnitudes into the received codeword at their positions.
func Decode(received []byte, numECCodewords int) ([]byte, error) {
	syndromes := Syndromes(received, numECCodewords)
	if !HasErrors(syndromes) {
		out := make([]byte, len(received))
		copy(out, received)
		return out, nil
	}

	// The syndrome polynomial is built low-order-coefficient-first in the
	// sense that S_0 is the constant term; Polynomial stores high-degree
	// first, so S_i lands at index (numECCodewords-1-i).
	syndromeCoeffs := make([]byte, numECCodewords)
	for i, s := range syndromes {
		syndromeCoeffs[numECCodewords-1-i] = s
	}
	syndromePoly := New(syndromeCoeffs)

	sigma, omega, err := runEuclideanAlgorithm(Monomial(numECCodewords, 1), syndromePoly, numECCodewords)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUncorrectable, err)
	}

	errorLocations, err := findErrorLocations(sigma)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUncorrectable, err)
	}

	magnitudes, err := findErrorMagnitudes(omega, errorLocations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUncorrectable, err)
	}

	out := make([]byte, len(received))
	copy(out, received)
	for i, loc := range errorLocations {
		logLoc, err := gf256.Log(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUncorrectable, err)
		}
		position := len(out) - 1 - logLoc
		if position < 0 || position >= len(out) {
			return nil, fmt.Errorf("%w: error position out of range", ErrUncorrectable)
		}
		out[position] = gf256.Add(out[position], magnitudes[i])
	}
	return out, nil
}

// runEuclideanAlgorithm solves the key equation sigma(x)*S(x) = omega(x)
// (mod x^R) via the extended Euclidean algorithm on the pair (a, b) =
// (x^R, S(x)), stopping once the remainder's degree drops below R/2.
func runEuclideanAlgorithm(a, b Polynomial, r int) (sigma, omega Polynomial, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, rCur := a, b
	tLast, tCur := New([]byte{0}), New([]byte{1})

	for rCur.Degree() >= r/2 {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = rCur, tCur

		if rLast.IsZero() {
			return Polynomial{}, Polynomial{}, fmt.Errorf("r[i-1] was zero")
		}
		rCur = rLastLast

		q := New([]byte{0})
		denomInverse, err := gf256.Inverse(rLast.CoefficientAt(rLast.Degree()))
		if err != nil {
			return Polynomial{}, Polynomial{}, err
		}
		for rCur.Degree() >= rLast.Degree() && !rCur.IsZero() {
			degreeDiff := rCur.Degree() - rLast.Degree()
			scale := gf256.Mul(rCur.CoefficientAt(rCur.Degree()), denomInverse)
			q = q.Add(Monomial(degreeDiff, scale))
			rCur = rCur.Add(rLast.MultiplyMonomial(degreeDiff, scale))
		}

		tCur = q.Multiply(tLast).Add(tLastLast)

		if rCur.Degree() >= rLast.Degree() {
			return Polynomial{}, Polynomial{}, fmt.Errorf("division failed to reduce remainder degree")
		}
	}

	sigmaTildeAtZero := tCur.CoefficientAt(0)
	if sigmaTildeAtZero == 0 {
		return Polynomial{}, Polynomial{}, fmt.Errorf("sigmaTilde(0) was zero")
	}

	inverse, err := gf256.Inverse(sigmaTildeAtZero)
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}
	sigma = tCur.MultiplyScalar(inverse)
	omega = rCur.MultiplyScalar(inverse)
	return sigma, omega, nil
}

// findErrorLocations performs the Chien search: it finds the positions X_i
// such that sigma(1/X_i) = 0, by evaluating sigma at every nonzero field
// element and inverting the roots found.
func findErrorLocations(sigma Polynomial) ([]byte, error) {
	numErrors := sigma.Degree()
	if numErrors == 1 {
		return []byte{sigma.CoefficientAt(1)}, nil
	}

	result := make([]byte, 0, numErrors)
	for i := 1; i < 256 && len(result) < numErrors; i++ {
		if sigma.Eval(byte(i)) == 0 {
			inv, err := gf256.Inverse(byte(i))
			if err != nil {
				return nil, err
			}
			result = append(result, inv)
		}
	}
	if len(result) != numErrors {
		return nil, fmt.Errorf("error locator degree does not match number of roots")
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula at each error location:
// magnitude(X_i) = omega(1/X_i) / product_{j!=i}(1 - X_j/X_i). The extra
// 1/X_i factor is applied only for a nonzero generator base; QR uses base 0.
func findErrorMagnitudes(omega Polynomial, errorLocations []byte) ([]byte, error) {
	result := make([]byte, len(errorLocations))
	for i, loc := range errorLocations {
		xiInverse, err := gf256.Inverse(loc)
		if err != nil {
			return nil, err
		}

		derivative := byte(1)
		for j, other := range errorLocations {
			if i == j {
				continue
			}
			term := gf256.Mul(other, xiInverse)
			var termPlusOne byte
			if term&1 == 0 {
				termPlusOne = term | 1
			} else {
				termPlusOne = term &^ 1
			}
			derivative = gf256.Mul(derivative, termPlusOne)
		}

		derivativeInverse, err := gf256.Inverse(derivative)
		if err != nil {
			return nil, err
		}

		magnitude := gf256.Mul(omega.Eval(xiInverse), derivativeInverse)
		if gf256.GeneratorBase != 0 {
			magnitude = gf256.Mul(magnitude, xiInverse)
		}
		result[i] = magnitude
	}
	return result, nil
}
