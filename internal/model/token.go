package model

// Token is one token of a parsed transcript, as returned by the
// linguistic parser service. Head is the index of the syntactic head
// within the same sentence; the root token points at itself.
type Token struct {
	Text    string `json:"text"`               // Surface form
	Lemma   string `json:"lemma"`              // Base form
	POS     string `json:"pos"`                // Coarse part-of-speech tag (UPOS)
	Dep     string `json:"dep"`                // Dependency relation to head
	Head    int    `json:"head"`               // Index of head token in sentence
	IsStop  bool   `json:"is_stop,omitempty"`  // Function word
	IsPunct bool   `json:"is_punct,omitempty"` // Punctuation
	IsSpace bool   `json:"is_space,omitempty"` // Whitespace-only token
}

// Sentence is one parsed sentence with its dependency structure.
type Sentence struct {
	Tokens []Token `json:"tokens"`
	Root   int     `json:"root"` // Index of the root token, -1 if absent
}

// Part-of-speech tags the extractors care about.
const (
	POSNoun      = "NOUN"
	POSProperN   = "PROPN"
	POSVerb      = "VERB"
	POSAdjective = "ADJ"
	POSAdverb    = "ADV"
	POSPronoun   = "PRON"
)

// maxTreeDepth bounds dependency-tree recursion so a malformed parse
// with head cycles cannot recurse forever.
const maxTreeDepth = 50

// Words returns the non-punctuation, non-whitespace tokens.
func (s Sentence) Words() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.IsPunct || t.IsSpace {
			continue
		}
		out = append(out, t)
	}
	return out
}

// WordCount returns the number of non-punctuation, non-whitespace tokens.
func (s Sentence) WordCount() int {
	n := 0
	for _, t := range s.Tokens {
		if !t.IsPunct && !t.IsSpace {
			n++
		}
	}
	return n
}

// ContentWords returns tokens that are neither stop words, punctuation
// nor whitespace.
func (s Sentence) ContentWords() []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.IsStop || t.IsPunct || t.IsSpace {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RootIndex returns the index of the sentence root. It prefers the
// explicit Root field and falls back to the first self-headed token.
func (s Sentence) RootIndex() int {
	if s.Root >= 0 && s.Root < len(s.Tokens) {
		return s.Root
	}
	for i, t := range s.Tokens {
		if t.Head == i {
			return i
		}
	}
	return -1
}

// TreeDepth returns the maximum depth of the sentence's dependency
// tree, counted in edges from the root: a childless root has depth 0.
// An empty or rootless sentence also has depth 0.
func (s Sentence) TreeDepth() int {
	root := s.RootIndex()
	if root < 0 {
		return 0
	}
	children := make(map[int][]int, len(s.Tokens))
	for i, t := range s.Tokens {
		if i == root || t.Head < 0 || t.Head >= len(s.Tokens) || t.Head == i {
			continue
		}
		children[t.Head] = append(children[t.Head], i)
	}
	return subtreeDepth(root, children, 0)
}

func subtreeDepth(node int, children map[int][]int, depth int) int {
	if depth >= maxTreeDepth {
		return depth
	}
	max := depth
	for _, c := range children[node] {
		if d := subtreeDepth(c, children, depth+1); d > max {
			max = d
		}
	}
	return max
}
