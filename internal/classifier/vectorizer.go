package classifier

import (
	"math"
	"regexp"
	"sort"
)

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer turns text into L2-normalized TF-IDF vectors over unigrams and
// bigrams. Stop words are dropped before bigrams are formed.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// analyze splits text into its unigram and bigram terms.
func analyze(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if !isStopWord(tok) {
			tokens = append(tokens, tok)
		}
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Fit learns the vocabulary and smoothed inverse document frequencies.
func (v *Vectorizer) Fit(docs []string) {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range analyze(doc) {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
}

// Transform returns the sparse feature vector of text. Terms outside the
// vocabulary are ignored, so unknown or empty text yields an empty vector.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range analyze(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for _, idx := range sortedIndices(vec) {
		w := vec[idx] * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// Size is the number of features.
func (v *Vectorizer) Size() int {
	return len(v.IDF)
}

// sortedIndices returns the feature indices of x in ascending order, so that
// floating point sums over x do not depend on map iteration order.
func sortedIndices(x map[int]float64) []int {
	idx := make([]int, 0, len(x))
	for j := range x {
		idx = append(idx, j)
	}
	sort.Ints(idx)
	return idx
}
