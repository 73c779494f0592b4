// Package cache stores completed assessments keyed by transcript text
// and scoring-config version. Assessments are deterministic, so a hit
// can be served without re-parsing or re-scoring; any config change
// produces a different key and naturally invalidates old entries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lexiscan/lexiscan/internal/model"
)

// Cache is a byte-level cache with TTL semantics.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for one transcript under one scoring
// configuration. The preprocessed text is hashed, never stored in the
// key, so keys leak nothing about transcript content.
func Key(text, configVersion string) string {
	h := sha256.New()
	h.Write([]byte(configVersion))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "lexiscan:v1:" + hex.EncodeToString(h.Sum(nil))
}

// Memory is the in-process Cache implementation, backed by go-cache.
// It covers repeated assessments within one run, e.g. duplicate
// transcripts in a batch, and serves as the fast layer of Layered.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *Memory) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value with the given TTL; zero means the default.
func (c *Memory) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *Memory) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *Memory) Clear() error {
	c.cache.Flush()
	return nil
}

// Assessments is a typed view over a byte cache for risk assessments.
type Assessments struct {
	cache Cache
	ttl   time.Duration
}

// NewAssessments wraps a byte cache with assessment marshaling.
func NewAssessments(c Cache, ttl time.Duration) *Assessments {
	return &Assessments{cache: c, ttl: ttl}
}

// Get returns the cached assessment for a transcript, if present.
// Undecodable entries are dropped and treated as misses.
func (a *Assessments) Get(text, configVersion string) (*model.RiskAssessment, bool) {
	key := Key(text, configVersion)
	data, ok := a.cache.Get(key)
	if !ok {
		return nil, false
	}
	var assessment model.RiskAssessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		_ = a.cache.Delete(key)
		return nil, false
	}
	return &assessment, true
}

// Put stores an assessment for a transcript.
func (a *Assessments) Put(text, configVersion string, assessment *model.RiskAssessment) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return a.cache.Set(Key(text, configVersion), data, a.ttl)
}
