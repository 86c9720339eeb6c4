package wire

import "encoding/binary"

// Vocabulary of the numeral grammar. Regular tens (50-90) are formed as
// ones[n-1] + "dziesiąt" and have no table of their own.
var (
	ones  = [9]string{"jeden", "dwa", "trzy", "cztery", "pięć", "sześć", "siedem", "osiem", "dziewięć"}
	teens = [10]string{"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście", "piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście"}

	irregularTens = [3]string{"dwadzieścia", "trzydzieści", "czterdzieści"}
	hundreds      = [2]string{"sto", "dwieście"}
)

const (
	zeroWord   = "zero"
	tensSuffix = "dziesiąt"

	// limbSep joins byte numerals into a composite integer,
	// most significant limb first.
	limbSep = "<<"
)

// AppendByte appends the numeral for n to dst.
func AppendByte(dst []byte, n byte) []byte {
	if n == 0 {
		return append(dst, zeroWord...)
	}
	h := int(n) / 100
	t := int(n) % 100 / 10
	u := int(n) % 10

	if h > 0 {
		dst = append(dst, hundreds[h-1]...)
		if t > 0 || u > 0 {
			dst = append(dst, ' ')
		}
	}
	if rem := int(n) % 100; rem >= 10 && rem <= 19 {
		return append(dst, teens[rem-10]...)
	}
	switch {
	case t >= 2 && t <= 4:
		dst = append(dst, irregularTens[t-2]...)
	case t >= 5:
		dst = append(dst, ones[t-1]...)
		dst = append(dst, tensSuffix...)
	}
	if t > 0 && u > 0 {
		dst = append(dst, ' ')
	}
	if u > 0 {
		dst = append(dst, ones[u-1]...)
	}
	return dst
}

// AppendUint64 appends the composite numeral for v to dst: the big-endian
// byte limbs of v joined by "<<", with leading zero limbs elided.
func AppendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, zeroWord...)
	}
	var limbs [8]byte
	binary.BigEndian.PutUint64(limbs[:], v)
	first := 0
	for limbs[first] == 0 {
		first++
	}
	for i := first; i < len(limbs); i++ {
		if i > first {
			dst = append(dst, limbSep...)
		}
		dst = AppendByte(dst, limbs[i])
	}
	return dst
}

// Byte parses one byte numeral at the cursor. Recognition is greedy and
// never fails: an unrecognized sequence yields 0 with the cursor unmoved.
//
// A space probed after a bare hundreds word is given back to the caller
// when no smaller word follows, so that the surrounding grammar still
// sees it. That is the only rollback the grammar defines.
func (s *Scanner) Byte() byte {
	if s.lit(zeroWord) {
		return 0
	}

	n := 0
	beforeHundredsSpace := -1
	switch {
	case s.lit(hundreds[1]):
		n = 200
	case s.lit(hundreds[0]):
		n = 100
	}
	if n > 0 {
		beforeHundredsSpace = s.off
		if !s.lit(" ") {
			return byte(n)
		}
	}

	tens := 0
	switch {
	case s.lit(irregularTens[0]):
		tens = 20
	case s.lit(irregularTens[1]):
		tens = 30
	case s.lit(irregularTens[2]):
		tens = 40
	default:
		for i := 4; i < len(ones); i++ {
			save := s.off
			if s.lit(ones[i]) && s.lit(tensSuffix) {
				tens = (i + 1) * 10
				break
			}
			s.off = save
		}
	}
	if tens > 0 {
		n += tens
		if !s.lit(" ") {
			return byte(n)
		}
	}

	for i := range teens {
		if s.lit(teens[i]) {
			return byte(n + 10 + i)
		}
	}
	for i := range ones {
		if s.lit(ones[i]) {
			return byte(n + 1 + i)
		}
	}

	if tens == 0 && beforeHundredsSpace >= 0 {
		s.off = beforeHundredsSpace
	}
	return byte(n)
}

// Uint64 parses a composite integer: a byte numeral, extended by a "<<"
// separator and another byte numeral for as long as one follows.
func (s *Scanner) Uint64() uint64 {
	v := uint64(s.Byte())
	for s.lit(limbSep) {
		v = v<<8 | uint64(s.Byte())
	}
	return v
}
