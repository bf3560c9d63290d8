// Package textnorm folds user-supplied free text (session notes, display names) into a
// canonical comparable form: NFKC normalization followed by Unicode case folding. It is used
// wherever two pieces of user text need to compare equal regardless of case or compatibility
// variant, without pulling in a locale database
package textnorm

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKC, cases.Fold())
	},
}

// Fold returns the canonical comparison form of s: NFKC-normalized and case-folded
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return out
}

// Equal reports whether a and b are equal under Fold
func Equal(a, b string) bool { return Fold(a) == Fold(b) }
