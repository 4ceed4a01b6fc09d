package usecase

import (
	"math"
	"regexp"
	"strings"

	"github.com/ecomart/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// stopWords are common English words dropped during tokenization so that
// catalog-wide filler terms never enter the vocabulary.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "few": true, "for": true, "from": true,
	"further": true, "had": true, "has": true, "have": true, "having": true,
	"he": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true,
	"nor": true, "not": true, "now": true, "of": true, "off": true,
	"on": true, "once": true, "only": true, "or": true, "other": true,
	"our": true, "ours": true, "out": true, "over": true, "own": true,
	"per": true, "same": true, "she": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"theirs": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true,
	"why": true, "will": true, "with": true, "you": true, "your": true,
	"yours": true,
}

// Tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, single characters, and pure numbers.
func Tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	words := strings.Fields(cleaned)

	var tokens []string
	for _, word := range words {
		if len(word) <= 1 {
			continue
		}
		if stopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// TextIndex is an immutable TF-IDF representation of one text column of a
// catalog snapshot. It holds the per-row term weight vectors plus the
// fitted IDF table used to project new query strings into the same space.
// An index is rebuilt in full whenever the snapshot changes; it is never
// mutated in place, so vocabulary and row order always correspond 1:1.
type TextIndex struct {
	idf      map[string]float64
	rows     []map[string]float64
	rowNorms []float64
	built    bool
}

// BuildTextIndex fits a TF-IDF vocabulary over the corpus and weights
// every row. Empty or missing strings are treated as empty text. The
// result is deterministic for a given corpus and ordering.
func BuildTextIndex(corpus []string) *TextIndex {
	docFreq := make(map[string]int)
	rowTokens := make([][]string, len(corpus))
	for i, text := range corpus {
		tokens := Tokenize(text)
		rowTokens[i] = tokens
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1, so corpus-wide terms still get
	// a small positive weight and rare terms dominate.
	n := float64(len(corpus))
	idf := make(map[string]float64, len(docFreq))
	for term, df := range docFreq {
		idf[term] = math.Log((1+n)/(1+float64(df))) + 1
	}

	ix := &TextIndex{
		idf:      idf,
		rows:     make([]map[string]float64, len(corpus)),
		rowNorms: make([]float64, len(corpus)),
		built:    true,
	}
	for i, tokens := range rowTokens {
		vec := ix.weigh(tokens)
		ix.rows[i] = vec
		ix.rowNorms[i] = vectorNorm(vec)
	}
	return ix
}

// weigh converts a token sequence into a term-weight vector using the
// fitted IDF table. Out-of-vocabulary tokens contribute zero weight.
func (ix *TextIndex) weigh(tokens []string) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	vec := make(map[string]float64, len(counts))
	for term, count := range counts {
		if w, ok := ix.idf[term]; ok {
			vec[term] = float64(count) * w
		}
	}
	return vec
}

// Vectorize projects a single string into the fitted vocabulary space.
func (ix *TextIndex) Vectorize(text string) (map[string]float64, error) {
	if ix == nil || !ix.built {
		return nil, domain.ErrIndexNotBuilt
	}
	if len(ix.idf) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	return ix.weigh(Tokenize(text)), nil
}

// Similarities returns the cosine similarity of the query vector against
// every corpus row, in corpus order. An empty corpus yields an empty
// slice; a zero query vector yields all zeros.
func (ix *TextIndex) Similarities(query map[string]float64) []float64 {
	sims := make([]float64, len(ix.rows))
	qNorm := vectorNorm(query)
	if qNorm == 0 {
		return sims
	}
	for i, row := range ix.rows {
		if ix.rowNorms[i] == 0 {
			continue
		}
		sims[i] = dotProduct(query, row) / (qNorm * ix.rowNorms[i])
	}
	return sims
}

// Len returns the number of rows the index was built over.
func (ix *TextIndex) Len() int {
	return len(ix.rows)
}

// CosineSimilarity computes the normalized dot product of two sparse
// vectors. Zero vectors have zero similarity with everything.
func CosineSimilarity(a, b map[string]float64) float64 {
	na, nb := vectorNorm(a), vectorNorm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dotProduct(a, b) / (na * nb)
}

func dotProduct(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, va := range a {
		if vb, ok := b[term]; ok {
			sum += va * vb
		}
	}
	return sum
}

func vectorNorm(v map[string]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
