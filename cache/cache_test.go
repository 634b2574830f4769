package cache

import (
	"bytes"
	"testing"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/metadata"
	"github.com/provable-games/gametoken/token"
)

func testRecord(id uint64) *token.Record {
	return &token.Record{
		TokenID:    id,
		GameID:     1,
		MinterID:   1,
		Lifecycle:  token.Lifecycle{Start: 0, End: 0},
		PlayerName: "tester",
	}
}

func TestNewDocumentCache(t *testing.T) {
	cache := NewDocumentCache(100)
	if cache.Size() != 0 {
		t.Error("New cache should be empty")
	}
}

func TestDocumentCachePutGet(t *testing.T) {
	cache := NewDocumentCache(100)

	rec := testRecord(1)
	digest := commit.Record(rec)
	doc := []byte(`{"name":"one"}`)

	cache.Put(digest, token.Active, doc)

	retrieved := cache.Get(digest, token.Active)
	if !bytes.Equal(retrieved, doc) {
		t.Error("Should retrieve same document")
	}

	// Different commitment should miss
	other := commit.Record(testRecord(2))
	if cache.Get(other, token.Active) != nil {
		t.Error("Different commitment should miss")
	}

	// Same commitment in a different play state should miss
	if cache.Get(digest, token.Ended) != nil {
		t.Error("Different play state should miss")
	}
}

func TestDocumentCacheEviction(t *testing.T) {
	cache := NewDocumentCache(2)

	// Add 3 entries to trigger eviction
	cache.Put(commit.Record(testRecord(1)), token.Active, []byte("a"))
	cache.Put(commit.Record(testRecord(2)), token.Active, []byte("b"))
	cache.Put(commit.Record(testRecord(3)), token.Active, []byte("c"))

	if cache.Size() > 2 {
		t.Errorf("Cache size should be <= 2, got %d", cache.Size())
	}

	// The first entry is the one evicted
	if cache.Get(commit.Record(testRecord(1)), token.Active) != nil {
		t.Error("Oldest entry should have been evicted")
	}
	if cache.Get(commit.Record(testRecord(3)), token.Active) == nil {
		t.Error("Newest entry should still be cached")
	}
}

func TestDocumentCacheGetOrCompute(t *testing.T) {
	cache := NewDocumentCache(100)

	computeCount := 0
	compute := func() ([]byte, error) {
		computeCount++
		return []byte(`{"name":"x"}`), nil
	}

	digest := commit.Record(testRecord(5))

	// First call should compute
	doc1, err := cache.GetOrCompute(digest, token.Active, compute)
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if computeCount != 1 {
		t.Error("Should compute on first call")
	}

	// Second call should use cache
	doc2, err := cache.GetOrCompute(digest, token.Active, compute)
	if err != nil {
		t.Fatalf("GetOrCompute failed: %v", err)
	}
	if computeCount != 1 {
		t.Error("Should not compute on second call")
	}

	if !bytes.Equal(doc1, doc2) {
		t.Error("Should return same document")
	}
}

func TestDocumentCacheStats(t *testing.T) {
	cache := NewDocumentCache(100)

	digest := commit.Record(testRecord(1))
	cache.Put(digest, token.Active, []byte("a"))

	// Hit
	cache.Get(digest, token.Active)
	// Miss
	cache.Get(commit.Record(testRecord(2)), token.Active)

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("Expected 0.5 hit rate, got %f", stats.HitRate)
	}
}

func TestDocumentCacheClear(t *testing.T) {
	cache := NewDocumentCache(100)
	cache.Put(commit.Record(testRecord(1)), token.Active, []byte("a"))
	cache.Put(commit.Record(testRecord(2)), token.Active, []byte("b"))

	cache.Clear()

	if cache.Size() != 0 {
		t.Error("Cache should be empty after clear")
	}
}

func TestCachedRenderer(t *testing.T) {
	opts := metadata.Options{
		CollectionName: "Game Session Token",
		Symbol:         "GST",
		BaseURI:        "https://example.test/token/",
	}
	renderer := NewCachedRenderer(opts, 100)

	rec := testRecord(7)

	// First render
	doc1, err := renderer.Render(rec, 1000)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if doc1 == nil {
		t.Fatal("Should return document")
	}

	// Second render should hit cache
	doc2, err := renderer.Render(rec, 1000)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(doc1, doc2) {
		t.Error("Second call should return cached document")
	}

	stats := renderer.Cache().Stats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
}

func TestCachedRendererInvalidation(t *testing.T) {
	renderer := NewCachedRenderer(metadata.Options{CollectionName: "GST"}, 100)

	rec := testRecord(8)
	doc1, err := renderer.Render(rec, 1000)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Mutating the record changes the commitment, so the next render
	// recomputes instead of serving the stale document.
	rec.Score = 500
	doc2, err := renderer.Render(rec, 1000)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if bytes.Equal(doc1, doc2) {
		t.Error("Changed record should render a different document")
	}
	if renderer.Cache().Size() != 2 {
		t.Errorf("Expected 2 cached entries, got %d", renderer.Cache().Size())
	}
}

func TestCachedRendererClearCache(t *testing.T) {
	renderer := NewCachedRenderer(metadata.Options{CollectionName: "GST"}, 100)
	if _, err := renderer.Render(testRecord(9), 1000); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	renderer.ClearCache()

	if renderer.Cache().Size() != 0 {
		t.Error("Cache should be empty")
	}
}
