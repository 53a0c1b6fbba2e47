package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrimsLeadingZeros(t *testing.T) {
	p := New([]byte{0, 0, 5, 3})
	assert.Equal(t, []byte{5, 3}, p.Coefficients())
	assert.Equal(t, 1, p.Degree())
}

func TestNewZeroPolynomial(t *testing.T) {
	p := New([]byte{0, 0, 0})
	assert.True(t, p.IsZero())
	assert.Equal(t, 0, p.Degree())
}

func TestMonomial(t *testing.T) {
	m := Monomial(3, 7)
	assert.Equal(t, 3, m.Degree())
	assert.Equal(t, byte(7), m.CoefficientAt(3))
	assert.Equal(t, byte(0), m.CoefficientAt(0))

	assert.True(t, Monomial(4, 0).IsZero())
}

func TestEvalHornersMethod(t *testing.T) {
	// p(x) = 1 (constant polynomial)
	p := New([]byte{1})
	assert.Equal(t, byte(1), p.Eval(0))
	assert.Equal(t, byte(1), p.Eval(5))
}

func TestEvalAtZeroIsConstantTerm(t *testing.T) {
	p := New([]byte{3, 9, 42})
	assert.Equal(t, byte(42), p.Eval(0))
}

func TestAddIsCommutativeAndSelfInverse(t *testing.T) {
	p := New([]byte{1, 2, 3})
	q := New([]byte{9})
	assert.Equal(t, p.Add(q), q.Add(p))
	assert.True(t, p.Add(p).IsZero())
}

func TestMultiplyByZeroIsZero(t *testing.T) {
	p := New([]byte{1, 2, 3})
	zero := New([]byte{0})
	assert.True(t, p.Multiply(zero).IsZero())
}

func TestMultiplyDegreeAdds(t *testing.T) {
	p := New([]byte{1, 0}) // x
	q := New([]byte{1, 0}) // x
	product := p.Multiply(q)
	assert.Equal(t, 2, product.Degree())
}

func TestQuotientRemainderReconstructsDividend(t *testing.T) {
	p := New([]byte{1, 0, 0, 5, 9})
	divisor := New([]byte{1, 2})

	quotient, remainder, err := p.QuotientRemainder(divisor)
	require.NoError(t, err)
	assert.Less(t, remainder.Degree(), divisor.Degree())

	reconstructed := quotient.Multiply(divisor).Add(remainder)
	assert.Equal(t, p.Coefficients(), reconstructed.Coefficients())
}

func TestQuotientRemainderByZeroErrors(t *testing.T) {
	p := New([]byte{1, 2})
	_, _, err := p.QuotientRemainder(New([]byte{0}))
	require.Error(t, err)
}

func TestModMatchesRemainderOfQuotientRemainder(t *testing.T) {
	p := New([]byte{1, 0, 0, 5, 9})
	divisor := New([]byte{1, 2})

	_, remainder, err := p.QuotientRemainder(divisor)
	require.NoError(t, err)

	modResult, err := p.Mod(divisor)
	require.NoError(t, err)
	assert.Equal(t, remainder.Coefficients(), modResult.Coefficients())
}
