// Package worddiff splits document text into words and counts the words
// added and deleted between two versions of a document.
package worddiff

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrTooManyTokens is returned when two versions together contain more
// distinct words than can be encoded for the alignment.
var ErrTooManyTokens = errors.New("too many distinct tokens to diff")

// Code points 0xD800-0xDFFF are not valid runes and would be replaced with
// utf8.RuneError when the sequences pass through strings, so token indexes
// skip that range.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
	maxTokens    = utf8.MaxRune + 1 - surrogateLen
)

// Result holds the word counts produced by a single diff.
type Result struct {
	Added   int
	Deleted int
}

// Net returns words added minus words deleted.
func (r Result) Net() int {
	return r.Added - r.Deleted
}

// Tokenize splits text on runs of Unicode whitespace.
// Empty or whitespace-only text yields no tokens.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// DiffText tokenizes both texts and diffs them.
func DiffText(prev, cur string) (Result, error) {
	return Diff(Tokenize(prev), Tokenize(cur))
}

// Diff aligns prev against cur along a longest common subsequence and
// reports how many tokens were inserted and deleted. A replaced span counts
// as a deletion plus an insertion.
//
// When prev is empty every token of cur is reported as added.
func Diff(prev, cur []string) (Result, error) {
	if len(prev) == 0 {
		return Result{Added: len(cur)}, nil
	}
	if len(cur) == 0 {
		return Result{Deleted: len(prev)}, nil
	}

	r1, r2, err := encode(prev, cur)
	if err != nil {
		return Result{}, err
	}

	// A zero timeout disables the half-match shortcut and the bisect deadline,
	// which keeps the edit script minimal and the output deterministic.
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	var res Result
	for _, d := range dmp.DiffMainRunes(r1, r2, false) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			res.Added += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			res.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return res, nil
}

// encode maps every distinct token to a single rune so the character-level
// differ operates on whole words.
func encode(prev, cur []string) ([]rune, []rune, error) {
	index := make(map[string]rune, len(prev))
	next := 0

	convert := func(tokens []string) ([]rune, error) {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := index[tok]
			if !ok {
				if next >= maxTokens {
					return nil, ErrTooManyTokens
				}
				r = tokenRune(next)
				index[tok] = r
				next++
			}
			out[i] = r
		}
		return out, nil
	}

	r1, err := convert(prev)
	if err != nil {
		return nil, nil, err
	}
	r2, err := convert(cur)
	if err != nil {
		return nil, nil, err
	}
	return r1, r2, nil
}

func tokenRune(i int) rune {
	if i >= surrogateMin {
		return rune(i + surrogateLen)
	}
	return rune(i)
}
