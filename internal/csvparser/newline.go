package csvparser

import (
	"golang.org/x/text/transform"
)

// newlineNormalizer rewrites "\r\n" and lone "\r" to "\n", so sources saved
// with classic Mac line endings split into rows like any other file.
// encoding/csv only recognizes "\n" and "\r\n" as record terminators.
//
// The rewrite applies inside quoted fields too: a value spanning lines
// always comes out with "\n" line breaks.
type newlineNormalizer struct {
	transform.NopResetter
}

// Transform implements transform.Transformer.
func (newlineNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]

		if c == '\r' {
			// A trailing "\r" may be the first half of "\r\n"; wait for more input.
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			c = '\n'
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++

		if src[nSrc] == '\r' && nSrc+1 < len(src) && src[nSrc+1] == '\n' {
			nSrc++
		}
		nSrc++
	}
	return nDst, nSrc, nil
}
