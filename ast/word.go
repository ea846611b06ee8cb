package ast

import "github.com/helena-lang/helena-go/token"

// WordType classifies a Word by its morpheme pattern (spec §4.3).
type WordType int

const (
	// ROOT: exactly one root-capable morpheme.
	Root WordType = iota
	// COMPOUND: literal/expression/substitution-headed morphemes combined.
	Compound
	// SUBSTITUTION: leading SubstituteNext run, a root, optional selectors.
	Substitution
	// QUALIFIED: Literal|Tuple|Block root followed by selector morphemes only.
	Qualified
	// IGNORED: a single LineComment or BlockComment.
	Ignored
	// INVALID: anything else.
	Invalid
)

func (t WordType) String() string {
	switch t {
	case Root:
		return "ROOT"
	case Compound:
		return "COMPOUND"
	case Substitution:
		return "SUBSTITUTION"
	case Qualified:
		return "QUALIFIED"
	case Ignored:
		return "IGNORED"
	default:
		return "INVALID"
	}
}

// Word is an ordered sequence of morphemes plus its derived WordType.
type Word struct {
	Morphemes []Morpheme
	Type      WordType
	Pos       *token.Position
}

// Sentence is an ordered sequence of Words.
type Sentence struct {
	Words []Word
	Pos   *token.Position
}

// Script is an ordered sequence of Sentences.
type Script struct {
	Sentences []Sentence
	Pos       *token.Position
}

func isRootCapable(m Morpheme) bool {
	switch m.(type) {
	case Literal, Tuple, Block, Expression, String, HereString, TaggedString:
		return true
	default:
		return false
	}
}

func isSelector(m Morpheme) bool {
	switch m.(type) {
	case Tuple, Block, Expression:
		return true
	default:
		return false
	}
}

func isCommentOnly(m Morpheme) bool {
	switch m.(type) {
	case LineComment, BlockComment:
		return true
	default:
		return false
	}
}

// Classify derives a Word's WordType from its morpheme pattern (spec §4.3).
// Runs once per Word, after parsing; the parser calls it when a word closes.
func Classify(morphemes []Morpheme) WordType {
	if len(morphemes) == 0 {
		return Invalid
	}
	if len(morphemes) == 1 && isCommentOnly(morphemes[0]) {
		return Ignored
	}

	// SUBSTITUTION: leading run of SubstituteNext, then a root, then
	// optional selectors (Tuple|Block|Expression), and nothing else.
	i := 0
	for i < len(morphemes) {
		if _, ok := morphemes[i].(SubstituteNext); !ok {
			break
		}
		i++
	}
	if i > 0 {
		if i >= len(morphemes) {
			return Invalid
		}
		if !isRootCapable(morphemes[i]) {
			return Invalid
		}
		for j := i + 1; j < len(morphemes); j++ {
			if !isSelector(morphemes[j]) {
				return Invalid
			}
		}
		return Substitution
	}

	// ROOT: exactly one root-capable morpheme.
	if len(morphemes) == 1 && isRootCapable(morphemes[0]) {
		return Root
	}

	// QUALIFIED: Literal|Tuple|Block root followed by one or more
	// selectors only.
	if isQualifiedRoot(morphemes[0]) {
		allSelectors := true
		for _, m := range morphemes[1:] {
			if !isSelector(m) {
				allSelectors = false
				break
			}
		}
		if allSelectors && len(morphemes) > 1 {
			return Qualified
		}
	}

	// COMPOUND: any combination of Literal, Expression, or
	// SubstituteNext-headed groups, with no bare Tuple/Block except
	// immediately after a substitution (already handled above).
	allCompoundCapable := true
	for _, m := range morphemes {
		switch m.(type) {
		case Literal, Expression, SubstituteNext:
		default:
			allCompoundCapable = false
		}
	}
	if allCompoundCapable {
		return Compound
	}

	return Invalid
}

func isQualifiedRoot(m Morpheme) bool {
	switch m.(type) {
	case Literal, Tuple, Block:
		return true
	default:
		return false
	}
}
