// Package version holds the static, per-version QR Code tables: module
// dimension, error-correction block layout, alignment pattern centers, and
// the BCH-encoded version/format information words. The version words are
// embedded verbatim from the ISO/IEC 18004 standard; the format table is
// computed once at init from the BCH generator, and the raw data-module
// count is computed by formula. All are package vars built once, the way
// the teacher and nayuki's port keep their tables.
package version

import "fmt"

// ECLevel is one of the four QR error-correction levels.
type ECLevel int

const (
	ECLevelL ECLevel = iota
	ECLevelM
	ECLevelQ
	ECLevelH
)

// Bits returns the 2-bit wire encoding of the level: L=1, M=0, Q=3, H=2.
func (l ECLevel) Bits() byte {
	switch l {
	case ECLevelL:
		return 1
	case ECLevelM:
		return 0
	case ECLevelQ:
		return 3
	case ECLevelH:
		return 2
	}
	panic(fmt.Sprintf("version: invalid ECLevel %d", l))
}

// ECLevelFromBits recovers an ECLevel from its 2-bit wire encoding.
func ECLevelFromBits(bits byte) (ECLevel, error) {
	switch bits {
	case 1:
		return ECLevelL, nil
	case 0:
		return ECLevelM, nil
	case 3:
		return ECLevelQ, nil
	case 2:
		return ECLevelH, nil
	}
	return 0, fmt.Errorf("version: invalid format-info EC level bits %#x", bits)
}

func (l ECLevel) String() string {
	switch l {
	case ECLevelL:
		return "L"
	case ECLevelM:
		return "M"
	case ECLevelQ:
		return "Q"
	case ECLevelH:
		return "H"
	}
	return "?"
}

// Block describes one group of identically-sized Reed-Solomon blocks.
type Block struct {
	Count         int
	DataCodewords int
}

// ECBlocks is the block layout for one (version, level) pair.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []Block
}

// NumBlocks is the total number of RS blocks across all groups.
func (e ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range e.Blocks {
		total += b.Count
	}
	return total
}

// TotalDataCodewords is the sum of every block's data codewords.
func (e ECBlocks) TotalDataCodewords() int {
	total := 0
	for _, b := range e.Blocks {
		total += b.Count * b.DataCodewords
	}
	return total
}

// TotalECCodewords is ECCodewordsPerBlock times the block count.
func (e ECBlocks) TotalECCodewords() int {
	return e.ECCodewordsPerBlock * e.NumBlocks()
}

// Version describes one QR Code version's fixed geometry and EC layout.
type Version struct {
	Number                  int
	AlignmentPatternCenters []int
	ECBlocksByLevel         [4]ECBlocks
}

// Dimension returns the module width/height: 17 + 4*version.
func (v *Version) Dimension() int {
	return 17 + 4*v.Number
}

// ECBlocksFor returns the block layout for the given error-correction level.
func (v *Version) ECBlocksFor(level ECLevel) ECBlocks {
	return v.ECBlocksByLevel[level]
}

// TotalCodewords returns the number of 8-bit codewords (data+EC) the
// version's data area holds at the given level.
func (v *Version) TotalCodewords(level ECLevel) int {
	blocks := v.ECBlocksFor(level)
	return blocks.TotalDataCodewords() + blocks.TotalECCodewords()
}

// ForNumber returns the Version for number in [1, 40].
func ForNumber(number int) (*Version, error) {
	if number < 1 || number > 40 {
		return nil, fmt.Errorf("version: invalid version number %d", number)
	}
	return &versions[number-1], nil
}

// ForDimension returns the Version whose Dimension matches dim.
func ForDimension(dim int) (*Version, error) {
	if dim < 21 || (dim-17)%4 != 0 {
		return nil, fmt.Errorf("version: invalid dimension %d", dim)
	}
	return ForNumber((dim - 17) / 4)
}

// NumRawDataModules returns the number of data-area bits available after
// excluding all function patterns: finders, separators, timing, alignment,
// format/version info. This can exceed TotalCodewords*8 by a handful of
// "remainder bits" that the zig-zag placement leaves unused, following the
// closed-form formula nayuki's qrcodegen.go derives (grounded there rather
// than re-tabulated, since it reproduces exactly the same 40 values as a
// lookup table would).
func (v *Version) NumRawDataModules() int {
	ver := v.Number
	result := (16*ver+128)*ver + 64
	if ver >= 2 {
		numAlign := ver/7 + 2
		result -= (25*numAlign-10)*numAlign - 55
		if ver >= 7 {
			result -= 36
		}
	}
	return result
}

func eb(ecCodewordsPerBlock int, blocks ...Block) ECBlocks {
	return ECBlocks{ECCodewordsPerBlock: ecCodewordsPerBlock, Blocks: blocks}
}

func b(count, dataCodewords int) Block {
	return Block{Count: count, DataCodewords: dataCodewords}
}

func nv(number int, align []int, l, m, q, h ECBlocks) Version {
	return Version{Number: number, AlignmentPatternCenters: align, ECBlocksByLevel: [4]ECBlocks{l, m, q, h}}
}

// versions holds the complete ISO/IEC 18004 table of 40 versions: module
// alignment-pattern centers and, for each of L/M/Q/H, the Reed-Solomon
// block groups (count of blocks, data codewords per block) and the shared
// EC codewords per block.
var versions = [40]Version{
	nv(1, nil, eb(7, b(1, 19)), eb(10, b(1, 16)), eb(13, b(1, 13)), eb(17, b(1, 9))),
	nv(2, []int{6, 18}, eb(10, b(1, 34)), eb(16, b(1, 28)), eb(22, b(1, 22)), eb(28, b(1, 16))),
	nv(3, []int{6, 22}, eb(15, b(1, 55)), eb(26, b(1, 44)), eb(18, b(2, 17)), eb(22, b(2, 13))),
	nv(4, []int{6, 26}, eb(20, b(1, 80)), eb(18, b(2, 32)), eb(26, b(2, 24)), eb(16, b(4, 9))),
	nv(5, []int{6, 30}, eb(26, b(1, 108)), eb(24, b(2, 43)), eb(18, b(2, 15), b(2, 16)), eb(22, b(2, 11), b(2, 12))),
	nv(6, []int{6, 34}, eb(18, b(2, 68)), eb(16, b(4, 27)), eb(24, b(4, 19)), eb(28, b(4, 15))),
	nv(7, []int{6, 22, 38}, eb(20, b(2, 78)), eb(18, b(4, 31)), eb(18, b(2, 14), b(4, 15)), eb(26, b(4, 13), b(1, 14))),
	nv(8, []int{6, 24, 42}, eb(24, b(2, 97)), eb(22, b(2, 38), b(2, 39)), eb(22, b(4, 18), b(2, 19)), eb(26, b(4, 14), b(2, 15))),
	nv(9, []int{6, 26, 46}, eb(30, b(2, 116)), eb(22, b(3, 36), b(2, 37)), eb(20, b(4, 16), b(4, 17)), eb(24, b(4, 12), b(4, 13))),
	nv(10, []int{6, 28, 50}, eb(18, b(2, 68), b(2, 69)), eb(26, b(4, 43), b(1, 44)), eb(24, b(6, 19), b(2, 20)), eb(28, b(6, 15), b(2, 16))),
	nv(11, []int{6, 30, 54}, eb(20, b(4, 81)), eb(30, b(1, 50), b(4, 51)), eb(28, b(4, 22), b(4, 23)), eb(24, b(3, 12), b(8, 13))),
	nv(12, []int{6, 32, 58}, eb(24, b(2, 92), b(2, 93)), eb(22, b(6, 36), b(2, 37)), eb(26, b(4, 20), b(6, 21)), eb(28, b(7, 14), b(4, 15))),
	nv(13, []int{6, 34, 62}, eb(26, b(4, 107)), eb(22, b(8, 37), b(1, 38)), eb(24, b(8, 20), b(4, 21)), eb(22, b(12, 11), b(4, 12))),
	nv(14, []int{6, 26, 46, 66}, eb(30, b(3, 115), b(1, 116)), eb(24, b(4, 40), b(5, 41)), eb(20, b(11, 16), b(5, 17)), eb(24, b(11, 12), b(5, 13))),
	nv(15, []int{6, 26, 48, 70}, eb(22, b(5, 87), b(1, 88)), eb(24, b(5, 41), b(5, 42)), eb(30, b(5, 24), b(7, 25)), eb(24, b(11, 12), b(7, 13))),
	nv(16, []int{6, 26, 50, 74}, eb(24, b(5, 98), b(1, 99)), eb(28, b(7, 45), b(3, 46)), eb(24, b(15, 19), b(2, 20)), eb(30, b(3, 15), b(13, 16))),
	nv(17, []int{6, 30, 54, 78}, eb(28, b(1, 107), b(5, 108)), eb(28, b(10, 46), b(1, 47)), eb(28, b(1, 22), b(15, 23)), eb(28, b(2, 14), b(17, 15))),
	nv(18, []int{6, 30, 56, 82}, eb(30, b(5, 120), b(1, 121)), eb(26, b(9, 43), b(4, 44)), eb(28, b(17, 22), b(1, 23)), eb(28, b(2, 14), b(19, 15))),
	nv(19, []int{6, 30, 58, 86}, eb(28, b(3, 113), b(4, 114)), eb(26, b(3, 44), b(11, 45)), eb(26, b(17, 21), b(4, 22)), eb(26, b(9, 13), b(16, 14))),
	nv(20, []int{6, 34, 62, 90}, eb(28, b(3, 107), b(5, 108)), eb(26, b(3, 41), b(13, 42)), eb(30, b(15, 24), b(5, 25)), eb(28, b(15, 15), b(10, 16))),
	nv(21, []int{6, 28, 50, 72, 94}, eb(28, b(4, 116), b(4, 117)), eb(26, b(17, 42)), eb(28, b(17, 22), b(6, 23)), eb(30, b(19, 16), b(6, 17))),
	nv(22, []int{6, 26, 50, 74, 98}, eb(28, b(2, 111), b(7, 112)), eb(28, b(17, 46)), eb(30, b(7, 24), b(16, 25)), eb(24, b(34, 13))),
	nv(23, []int{6, 30, 54, 78, 102}, eb(30, b(4, 121), b(5, 122)), eb(28, b(4, 47), b(14, 48)), eb(30, b(11, 24), b(14, 25)), eb(30, b(16, 15), b(14, 16))),
	nv(24, []int{6, 28, 54, 80, 106}, eb(30, b(6, 117), b(4, 118)), eb(28, b(6, 45), b(14, 46)), eb(30, b(11, 24), b(16, 25)), eb(30, b(30, 16), b(2, 17))),
	nv(25, []int{6, 32, 58, 84, 110}, eb(26, b(8, 106), b(4, 107)), eb(28, b(8, 47), b(13, 48)), eb(30, b(7, 24), b(22, 25)), eb(30, b(22, 15), b(13, 16))),
	nv(26, []int{6, 30, 58, 86, 114}, eb(28, b(10, 114), b(2, 115)), eb(28, b(19, 46), b(4, 47)), eb(28, b(28, 22), b(6, 23)), eb(30, b(33, 16), b(4, 17))),
	nv(27, []int{6, 34, 62, 90, 118}, eb(30, b(8, 122), b(4, 123)), eb(28, b(22, 45), b(3, 46)), eb(30, b(8, 23), b(26, 24)), eb(30, b(12, 15), b(28, 16))),
	nv(28, []int{6, 26, 50, 74, 98, 122}, eb(30, b(3, 117), b(10, 118)), eb(28, b(3, 45), b(23, 46)), eb(30, b(4, 24), b(31, 25)), eb(30, b(11, 15), b(31, 16))),
	nv(29, []int{6, 30, 54, 78, 102, 126}, eb(30, b(7, 116), b(7, 117)), eb(28, b(21, 45), b(7, 46)), eb(30, b(1, 23), b(37, 24)), eb(30, b(19, 15), b(26, 16))),
	nv(30, []int{6, 26, 52, 78, 104, 130}, eb(30, b(5, 115), b(10, 116)), eb(28, b(19, 47), b(10, 48)), eb(30, b(15, 24), b(25, 25)), eb(30, b(23, 15), b(25, 16))),
	nv(31, []int{6, 30, 56, 82, 108, 134}, eb(30, b(13, 115), b(3, 116)), eb(28, b(2, 46), b(29, 47)), eb(30, b(42, 24), b(1, 25)), eb(30, b(23, 15), b(28, 16))),
	nv(32, []int{6, 34, 60, 86, 112, 138}, eb(30, b(17, 115)), eb(28, b(10, 46), b(23, 47)), eb(30, b(10, 24), b(35, 25)), eb(30, b(19, 15), b(35, 16))),
	nv(33, []int{6, 30, 58, 86, 114, 142}, eb(30, b(17, 115), b(1, 116)), eb(28, b(14, 46), b(21, 47)), eb(30, b(29, 24), b(19, 25)), eb(30, b(11, 15), b(46, 16))),
	nv(34, []int{6, 34, 62, 90, 118, 146}, eb(30, b(13, 115), b(6, 116)), eb(28, b(14, 46), b(23, 47)), eb(30, b(44, 24), b(7, 25)), eb(30, b(59, 16), b(1, 17))),
	nv(35, []int{6, 30, 54, 78, 102, 126, 150}, eb(30, b(12, 121), b(7, 122)), eb(28, b(12, 47), b(26, 48)), eb(30, b(39, 24), b(14, 25)), eb(30, b(22, 15), b(41, 16))),
	nv(36, []int{6, 24, 50, 76, 102, 128, 154}, eb(30, b(6, 121), b(14, 122)), eb(28, b(6, 47), b(34, 48)), eb(30, b(46, 24), b(10, 25)), eb(30, b(2, 15), b(64, 16))),
	nv(37, []int{6, 28, 54, 80, 106, 132, 158}, eb(30, b(17, 122), b(4, 123)), eb(28, b(29, 46), b(14, 47)), eb(30, b(49, 24), b(10, 25)), eb(30, b(24, 15), b(46, 16))),
	nv(38, []int{6, 32, 58, 84, 110, 136, 162}, eb(30, b(4, 122), b(18, 123)), eb(28, b(13, 46), b(32, 47)), eb(30, b(48, 24), b(14, 25)), eb(30, b(42, 15), b(32, 16))),
	nv(39, []int{6, 26, 54, 82, 110, 138, 166}, eb(30, b(20, 117), b(4, 118)), eb(28, b(40, 47), b(7, 48)), eb(30, b(43, 24), b(22, 25)), eb(30, b(10, 15), b(67, 16))),
	nv(40, []int{6, 30, 58, 86, 114, 142, 170}, eb(30, b(19, 118), b(6, 119)), eb(28, b(18, 47), b(31, 48)), eb(30, b(34, 24), b(34, 25)), eb(30, b(20, 15), b(61, 16))),
}
