package box

// FourCC is a four-character box type code ("ftyp", "moov", ...). Codes are
// ASCII by convention but arbitrary bytes on the wire.
type FourCC [4]byte

// CC builds a FourCC from a 4-character string literal. It panics on any
// other length; use ParseFourCC for untrusted input.
func CC(s string) FourCC {
	if len(s) != 4 {
		panic("box: FourCC literal must be 4 bytes: " + s)
	}
	return FourCC{s[0], s[1], s[2], s[3]}
}

// ParseFourCC converts a 4-character string into a FourCC.
func ParseFourCC(s string) (FourCC, bool) {
	if len(s) != 4 {
		return FourCC{}, false
	}
	return FourCC{s[0], s[1], s[2], s[3]}, true
}

// String renders the code with non-printable bytes replaced by '.', matching
// the convention used by hex viewers.
func (cc FourCC) String() string {
	var b [4]byte
	for i, c := range cc {
		if c >= 0x20 && c <= 0x7e {
			b[i] = c
		} else {
			b[i] = '.'
		}
	}
	return string(b[:])
}
