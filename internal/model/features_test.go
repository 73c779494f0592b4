package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFeatureSet_SetGet(t *testing.T) {
	fs := NewFeatureSet()

	if _, ok := fs.Get(MetricTypeTokenRatio); ok {
		t.Error("Expected missing metric before Set")
	}

	fs.Set(MetricTypeTokenRatio, 0.72)
	v, ok := fs.Get(MetricTypeTokenRatio)
	if !ok || v != 0.72 {
		t.Errorf("Expected 0.72, got %v (ok=%v)", v, ok)
	}
	if fs.Len() != 1 {
		t.Errorf("Expected Len 1, got %d", fs.Len())
	}
}

func TestFeatureSet_Completeness(t *testing.T) {
	fs := NewFeatureSet()
	fs.Set(MetricTypeTokenRatio, 0.7)
	fs.Set(MetricHesitationScore, 0.02)

	expected := []string{MetricTypeTokenRatio, MetricHesitationScore, MetricNounRatio, MetricVerbRatio}
	got := fs.Completeness(expected)
	if got != 0.5 {
		t.Errorf("Expected completeness 0.5, got %v", got)
	}

	if fs.Completeness(nil) != 0 {
		t.Error("Expected completeness 0 for empty expectation list")
	}
}

func TestFeatureSet_JSONRoundTrip(t *testing.T) {
	fs := NewFeatureSet()
	fs.Set(MetricTypeTokenRatio, 0.72)
	fs.Set(MetricHesitationScore, 0.05)
	fs.Set(MetricNounRatio, 0.24)
	fs.TokenCount = 120
	fs.WordCount = 100
	fs.SentenceCount = 8
	fs.ProcessedLength = 640

	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("Expected no marshal error, got %v", err)
	}

	// Metrics are grouped by category on the wire
	if !strings.Contains(string(data), `"lexical_diversity"`) {
		t.Errorf("Expected grouped category in output, got %s", data)
	}
	if !strings.Contains(string(data), `"type_token_ratio"`) {
		t.Errorf("Expected unqualified metric name in output, got %s", data)
	}

	var back FeatureSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Expected no unmarshal error, got %v", err)
	}
	for _, key := range []string{MetricTypeTokenRatio, MetricHesitationScore, MetricNounRatio} {
		want, _ := fs.Get(key)
		got, ok := back.Get(key)
		if !ok || got != want {
			t.Errorf("Metric %s: expected %v, got %v (ok=%v)", key, want, got, ok)
		}
	}
	if back.WordCount != 100 || back.SentenceCount != 8 {
		t.Errorf("Counts not preserved: %+v", back)
	}
}

func TestKnownMetric(t *testing.T) {
	if !KnownMetric(MetricComplexityVariance) {
		t.Error("Expected known metric")
	}
	if KnownMetric("lexical_diversity.made_up") {
		t.Error("Expected unknown metric to be rejected")
	}
}

func TestMetricCategory(t *testing.T) {
	if got := MetricCategory(MetricHesitationScore); got != CategoryFluency {
		t.Errorf("Expected %s, got %s", CategoryFluency, got)
	}
	if got := MetricCategory("bare"); got != "bare" {
		t.Errorf("Expected passthrough for unqualified key, got %s", got)
	}
}
