package corpus

import (
	"fmt"
	"strings"
)

// MissingPolicy decides what happens to a token ID absent from the table.
type MissingPolicy int

const (
	// MissingFail aborts decoding with an ErrLookup error.
	MissingFail MissingPolicy = iota
	// MissingOOV decodes the token as OOVWord.
	MissingOOV
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingFail:
		return "fail"
	case MissingOOV:
		return "oov"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

// ParseMissingPolicy parses "fail" or "oov".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(s) {
	case "fail":
		return MissingFail, nil
	case "oov":
		return MissingOOV, nil
	}
	return 0, fmt.Errorf("unknown missing-index policy %q (want fail or oov)", s)
}

// Decoder rebuilds review text from token IDs.
type Decoder struct {
	table  map[int]string
	policy MissingPolicy

	// Substituted counts tokens decoded as OOVWord under MissingOOV.
	Substituted int
}

// NewDecoder creates a Decoder over an IndexToWord table.
func NewDecoder(table map[int]string, policy MissingPolicy) *Decoder {
	return &Decoder{table: table, policy: policy}
}

// Decode joins the words of tokens with single spaces, in order.
func (d *Decoder) Decode(tokens []int) (string, error) {
	var sb strings.Builder
	for i, id := range tokens {
		word, ok := d.table[id]
		if !ok {
			if d.policy != MissingOOV {
				return "", fmt.Errorf("%w: token %d at position %d has no word", ErrLookup, id, i)
			}
			word = OOVWord
			d.Substituted++
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
	}
	return sb.String(), nil
}

// DecodeAll decodes every review, naming the failing review on error.
func (d *Decoder) DecodeAll(reviews []Review, tick func()) ([]string, error) {
	texts := make([]string, len(reviews))
	for i, r := range reviews {
		text, err := d.Decode(r.Tokens)
		if err != nil {
			return nil, fmt.Errorf("review %d: %w", i, err)
		}
		texts[i] = text
		if tick != nil {
			tick()
		}
	}
	return texts, nil
}
