package score

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lexiscan/lexiscan/internal/model"
)

// healthyFeatures builds a feature set typical of fluent adult speech.
func healthyFeatures() *model.FeatureSet {
	fs := model.NewFeatureSet()
	fs.Set(model.MetricTypeTokenRatio, 0.9)
	fs.Set(model.MetricHapaxRatio, 0.5)
	fs.Set(model.MetricUniqueLemmaRatio, 0.7)
	fs.Set(model.MetricVocabularySize, 200)
	fs.Set(model.MetricMeanSentenceLength, 15)
	fs.Set(model.MetricMeanWordLength, 4.5)
	fs.Set(model.MetricMeanTreeDepth, 4)
	fs.Set(model.MetricMaxTreeDepth, 7)
	fs.Set(model.MetricClausesPerSentence, 1.8)
	fs.Set(model.MetricComplexRatio, 0.5)
	fs.Set(model.MetricFillerRatio, 0)
	fs.Set(model.MetricRepetitionRatio, 0)
	fs.Set(model.MetricRevisionRatio, 0)
	fs.Set(model.MetricHesitationScore, 0)
	fs.Set(model.MetricNounRatio, 0.30)
	fs.Set(model.MetricVerbRatio, 0.20)
	fs.Set(model.MetricAdjectiveRatio, 0.08)
	fs.Set(model.MetricAdverbRatio, 0.06)
	fs.Set(model.MetricPronounRatio, 0.12)
	fs.Set(model.MetricWordRepetition, 0.02)
	fs.Set(model.MetricBigramRepetition, 0.01)
	fs.Set(model.MetricTrigramRepetition, 0)
	fs.Set(model.MetricStructRepetition, 0)
	fs.Set(model.MetricCombinedRepetition, 0.01)
	fs.Set(model.MetricComplexityVariance, 5)
	fs.TokenCount = 400
	fs.WordCount = 350
	fs.SentenceCount = 20
	fs.ProcessedLength = 1800
	return fs
}

func TestCombine_Contract(t *testing.T) {
	// Empty factor list is neutral
	if got := Combine(nil); got != 0.5 {
		t.Errorf("Expected 0.5 for no factors, got %v", got)
	}

	// A single risk-indicating (negative weight) factor at full risk
	// pushes the score to 1
	factors := []model.ContributingFactor{
		{SubRisk: 1, Weight: -0.5},
	}
	if got := Combine(factors); got != 1 {
		t.Errorf("Expected 1 for full negative-weight risk, got %v", got)
	}

	// A single protective (positive weight) factor at full strength
	// pushes the score toward 0
	factors = []model.ContributingFactor{
		{SubRisk: 1, Weight: 0.5},
	}
	if got := Combine(factors); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}

func TestCombine_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 1000; trial++ {
		n := rng.Intn(8)
		factors := make([]model.ContributingFactor, n)
		for i := range factors {
			factors[i] = model.ContributingFactor{
				SubRisk: rng.Float64(),
				Weight:  (rng.Float64()*2 - 1) * 10,
			}
		}
		got := Combine(factors)
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Fatalf("Trial %d: score %v out of [0,1] for %+v", trial, got, factors)
		}
	}
}

func TestScorer_HealthySampleIsLowRisk(t *testing.T) {
	s := New(model.DefaultModelConfig())
	a, err := s.Calculate(healthyFeatures())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if a.RiskLevel != model.RiskLow {
		t.Errorf("Expected low risk, got %s (score %.3f)", a.RiskLevel, a.OverallScore)
	}
	if a.OverallScore > 0.3 {
		t.Errorf("Expected overall score <= 0.3, got %.3f", a.OverallScore)
	}

	lex := a.Category(model.CategoryLexical)
	if lex == nil {
		t.Fatal("Expected lexical category")
	}
	if lex.Score > 0.1 {
		t.Errorf("Expected near-zero lexical risk, got %.3f", lex.Score)
	}
	if a.Confidence < 0.9 {
		t.Errorf("Expected high confidence for a rich sample, got %.2f", a.Confidence)
	}
}

func TestScorer_DisfluencyLowersFluencyScore(t *testing.T) {
	s := New(model.DefaultModelConfig())

	clean, err := s.Calculate(healthyFeatures())
	if err != nil {
		t.Fatalf("clean: %v", err)
	}

	impaired := healthyFeatures()
	impaired.Set(model.MetricFillerRatio, 0.10)
	impaired.Set(model.MetricRepetitionRatio, 0.15)
	impaired.Set(model.MetricRevisionRatio, 0.04)
	impaired.Set(model.MetricHesitationScore, 0.12)
	scored, err := s.Calculate(impaired)
	if err != nil {
		t.Fatalf("impaired: %v", err)
	}

	before := clean.Category(model.CategoryFluency).Score
	after := scored.Category(model.CategoryFluency).Score
	if after >= before {
		t.Errorf("Expected fluency score to decrease with disfluency: %.3f -> %.3f", before, after)
	}

	// The attention domain moves the other way: more hesitation, more risk
	attBefore := clean.Domain(model.DomainAttention).Score
	attAfter := scored.Domain(model.DomainAttention).Score
	if attAfter <= attBefore {
		t.Errorf("Expected attention domain risk to rise: %.3f -> %.3f", attBefore, attAfter)
	}
}

func TestScorer_EmptyFeaturesAreNeutral(t *testing.T) {
	s := New(model.DefaultModelConfig())
	a, err := s.Calculate(model.NewFeatureSet())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, c := range a.Categories {
		if c.Score != 0.5 {
			t.Errorf("Category %s: expected neutral 0.5, got %.3f", c.Key, c.Score)
		}
		if len(c.Factors) != 0 {
			t.Errorf("Category %s: expected no factors, got %d", c.Key, len(c.Factors))
		}
	}
	if a.OverallScore != 0.5 {
		t.Errorf("Expected neutral overall score, got %.3f", a.OverallScore)
	}
	if a.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %.2f", a.Confidence)
	}
	for _, d := range a.Domains {
		if d.Score != 0.5 {
			t.Errorf("Domain %s: expected neutral 0.5, got %.3f", d.Domain, d.Score)
		}
	}
}

func TestScorer_NilFeatureSet(t *testing.T) {
	s := New(model.DefaultModelConfig())
	_, err := s.Calculate(nil)
	if err == nil {
		t.Fatal("Expected error for nil feature set")
	}
	if _, ok := err.(*ComputationError); !ok {
		t.Errorf("Expected ComputationError, got %T", err)
	}
}

func TestScorer_SampleFloors(t *testing.T) {
	s := New(model.DefaultModelConfig())

	// Tiny vocabulary in a tiny sample must not be judged
	fs := healthyFeatures()
	fs.Set(model.MetricVocabularySize, 8)
	fs.WordCount = 9
	fs.SentenceCount = 1
	a, err := s.Calculate(fs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, f := range a.Category(model.CategoryLexical).Factors {
		if f.Metric == model.MetricVocabularySize {
			t.Error("Expected vocabulary size to be skipped below the word floor")
		}
	}
	for _, f := range a.Category(model.CategorySyntactic).Factors {
		if f.Metric == model.MetricComplexRatio {
			t.Error("Expected complex ratio to be skipped below the sentence floor")
		}
	}
}

func TestScorer_Deterministic(t *testing.T) {
	s := New(model.DefaultModelConfig())
	first, err := s.Calculate(healthyFeatures())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := s.Calculate(healthyFeatures())
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if next.OverallScore != first.OverallScore {
			t.Fatalf("Overall score drifted: %v vs %v", first.OverallScore, next.OverallScore)
		}
		for j, c := range next.Categories {
			if c.Key != first.Categories[j].Key || c.Score != first.Categories[j].Score {
				t.Fatalf("Category order or score drifted at %d: %+v vs %+v", j, c, first.Categories[j])
			}
		}
	}
}

func TestTopCategories(t *testing.T) {
	categories := []model.RiskCategory{
		{Key: "a", Score: 0.2},
		{Key: "b", Score: 0.9},
		{Key: "c", Score: 0.6},
		{Key: "d", Score: 0.6},
	}

	top := TopCategories(categories, 2, 0.4)
	if len(top) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(top))
	}
	if top[0].Key != "b" || top[1].Key != "c" {
		t.Errorf("Unexpected ranking: %s, %s", top[0].Key, top[1].Key)
	}

	// Floor excludes everything
	if got := TopCategories(categories, 2, 0.95); len(got) != 0 {
		t.Errorf("Expected no categories above floor, got %d", len(got))
	}
}

func TestConfidence_Blend(t *testing.T) {
	s := New(model.DefaultModelConfig())

	fs := healthyFeatures()
	fs.ProcessedLength = confidenceLength
	a, err := s.Calculate(fs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// All weighted metrics present and full length factor
	if a.Confidence != 1 {
		t.Errorf("Expected confidence 1, got %.3f", a.Confidence)
	}

	short := healthyFeatures()
	short.ProcessedLength = confidenceLength / 2
	b, err := s.Calculate(short)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := 0.7*0.5 + 0.3*1
	if math.Abs(b.Confidence-want) > 1e-9 {
		t.Errorf("Expected confidence %.3f, got %.3f", want, b.Confidence)
	}
}
