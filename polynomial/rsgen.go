package polynomial

import "github.com/jalphad/qrforge/gf256"

// GenerateGenerator builds the Reed-Solomon generator polynomial of degree
// numECCodewords: g(x) = product over i in [0, numECCodewords) of
// (x - alpha^(GeneratorBase+i)).
//
// Encoding a data block d(x) of k symbols then appends numECCodewords zero
// coefficients, divides by g(x), and keeps the remainder as the parity
// codewords: the returned codeword evaluates to 0 at alpha^0 .. alpha^(t-1).
func GenerateGenerator(numECCodewords int) Polynomial {
	g := New([]byte{1})
	root := gf256.Exp(gf256.GeneratorBase)
	for i := 0; i < numECCodewords; i++ {
		// Multiply g by (x - root) == (x + root) in characteristic 2.
		g = g.Multiply(New([]byte{1, root}))
		root = gf256.Mul(root, gf256.Exp(1))
	}
	return g
}

// Encode computes the error-correction codewords for a data block, given
// the number of ECC codewords desired. The returned slice has length
// numECCodewords; the caller appends it after the data codewords to form
// the full systematic codeword d || ecc.
func Encode(data []byte, numECCodewords int) []byte {
	generator := GenerateGenerator(numECCodewords)

	padded := make([]byte, len(data)+numECCodewords)
	copy(padded, data)

	message := New(padded)
	_, remainder, err := message.QuotientRemainder(generator)
	if err != nil {
		// generator is never the zero polynomial for numECCodewords > 0.
		panic(err)
	}

	ecc := make([]byte, numECCodewords)
	remCoeffs := remainder.Coefficients()
	// remainder may have fewer than numECCodewords coefficients (high-order
	// zero coefficients were trimmed); right-align into the ecc slice.
	copy(ecc[numECCodewords-len(remCoeffs):], remCoeffs)
	if remainder.IsZero() {
		for i := range ecc {
			ecc[i] = 0
		}
	}
	return ecc
}
