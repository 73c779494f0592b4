package extract

import (
	"github.com/lexiscan/lexiscan/internal/model"
)

// clauseDeps are the dependency relations counted as clause anchors.
// Every sentence has a ROOT clause; more than one anchor marks the
// sentence as complex.
var clauseDeps = map[string]bool{
	"ROOT":  true,
	"ccomp": true,
	"xcomp": true,
	"advcl": true,
	"acl":   true,
}

// extractSyntactic computes sentence-structure metrics, including per-
// sentence length variance which feeds the additional category.
func extractSyntactic(fs *model.FeatureSet, sentences []model.Sentence) {
	if len(sentences) == 0 {
		return
	}

	var (
		lengths     []float64
		totalWords  int
		totalChars  int
		totalDepth  int
		maxDepth    int
		clauseTotal int
		complex     int
	)
	for _, s := range sentences {
		wc := s.WordCount()
		lengths = append(lengths, float64(wc))
		totalWords += wc
		for _, t := range s.Words() {
			totalChars += len([]rune(t.Text))
		}

		depth := s.TreeDepth()
		totalDepth += depth
		if depth > maxDepth {
			maxDepth = depth
		}

		clauses := 0
		for _, t := range s.Tokens {
			if clauseDeps[t.Dep] {
				clauses++
			}
		}
		clauseTotal += clauses
		if clauses > 1 {
			complex++
		}
	}

	n := float64(len(sentences))
	fs.Set(model.MetricMeanSentenceLength, float64(totalWords)/n)
	fs.Set(model.MetricMeanTreeDepth, float64(totalDepth)/n)
	fs.Set(model.MetricMaxTreeDepth, float64(maxDepth))
	fs.Set(model.MetricClausesPerSentence, float64(clauseTotal)/n)
	fs.Set(model.MetricComplexRatio, float64(complex)/n)

	if totalWords > 0 {
		fs.Set(model.MetricMeanWordLength, float64(totalChars)/float64(totalWords))
	}

	// Sample variance needs at least two sentences.
	if len(lengths) >= 2 {
		mean := float64(totalWords) / n
		ss := 0.0
		for _, l := range lengths {
			d := l - mean
			ss += d * d
		}
		fs.Set(model.MetricComplexityVariance, ss/(n-1))
	}
}
