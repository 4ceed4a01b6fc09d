package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomart/backend/internal/domain"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const catalogJSON = `[
	{"product_id": "P1", "title": "Eco Soap", "brand": "GreenCo", "category_name": "Soap", "price": 10, "rating": 4, "eco_rating": "A", "water_rating": "A"},
	{"product_id": "P2", "title": "Plain Soap", "category_name": "Soap", "price": 10, "rating": 2, "eco_rating": "D", "water_rating": "D"}
]`

func TestFileSource_LoadProducts(t *testing.T) {
	t.Run("loads a bare product array", func(t *testing.T) {
		path := writeCatalogFile(t, catalogJSON)
		source := NewFileSource(path)

		products, err := source.LoadProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "P1", products[0].ID)
		assert.Equal(t, "Eco Soap", products[0].Title)
		assert.Equal(t, 10.0, products[0].Price)
		assert.Equal(t, "A", products[0].EcoGrade)
	})

	t.Run("loads the wrapped export format", func(t *testing.T) {
		path := writeCatalogFile(t, `{"products": `+catalogJSON+`}`)
		source := NewFileSource(path)

		products, err := source.LoadProducts(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		source := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
		_, err := source.LoadProducts(context.Background())
		assert.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeCatalogFile(t, `{not json`)
		source := NewFileSource(path)
		_, err := source.LoadProducts(context.Background())
		assert.Error(t, err)
	})
}

func TestExtractTags(t *testing.T) {
	p := domain.Product{Title: "Eco-Friendly Soap", Brand: "GreenCo", Category: "Personal Care"}
	tags := extractTags(p)

	assert.Contains(t, tags, "eco")
	assert.Contains(t, tags, "friendly")
	assert.Contains(t, tags, "soap")
	assert.Contains(t, tags, "greenco")
	assert.Contains(t, tags, "personal")
	assert.Contains(t, tags, "care")
}

func TestPreprocess(t *testing.T) {
	t.Run("fills missing tags", func(t *testing.T) {
		products := preprocess([]domain.Product{{Title: "Eco Soap", Category: "Soap"}})
		assert.NotEmpty(t, products[0].Tags)
	})

	t.Run("keeps pre-tagged rows untouched", func(t *testing.T) {
		products := preprocess([]domain.Product{{Title: "Eco Soap", Tags: "custom,tags"}})
		assert.Equal(t, "custom,tags", products[0].Tags)
	})
}

func TestStore(t *testing.T) {
	t.Run("current is nil before the first refresh", func(t *testing.T) {
		store := NewStore(NewFileSource("unused.json"))
		assert.Nil(t, store.Current())
	})

	t.Run("refresh publishes a complete bundle", func(t *testing.T) {
		path := writeCatalogFile(t, catalogJSON)
		store := NewStore(NewFileSource(path))

		require.NoError(t, store.Refresh(context.Background()))

		bundle := store.Current()
		require.NotNil(t, bundle)
		assert.Equal(t, 2, bundle.Snapshot.Len())
		assert.Equal(t, 2, bundle.TagIndex.Len())
		assert.Equal(t, 2, bundle.TitleIndex.Len())
		assert.Equal(t, 2, bundle.CategoryIndex.Len())

		p, ok := bundle.Snapshot.ByID("P1")
		require.True(t, ok)
		assert.NotEmpty(t, p.Tags, "tags derived during refresh")
	})

	t.Run("failed refresh keeps the previous bundle", func(t *testing.T) {
		path := writeCatalogFile(t, catalogJSON)
		store := NewStore(NewFileSource(path))
		require.NoError(t, store.Refresh(context.Background()))
		previous := store.Current()

		require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
		assert.Error(t, store.Refresh(context.Background()))
		assert.Same(t, previous, store.Current())
	})

	t.Run("refresh swaps the whole bundle", func(t *testing.T) {
		path := writeCatalogFile(t, catalogJSON)
		store := NewStore(NewFileSource(path))
		require.NoError(t, store.Refresh(context.Background()))
		first := store.Current()

		smaller := `[{"product_id": "P9", "title": "Bamboo Brush", "category_name": "Oral Care", "price": 4, "rating": 5, "eco_rating": "A+", "water_rating": "B"}]`
		require.NoError(t, os.WriteFile(path, []byte(smaller), 0o644))
		require.NoError(t, store.Refresh(context.Background()))

		bundle := store.Current()
		require.NotSame(t, first, bundle)
		assert.Equal(t, 1, bundle.Snapshot.Len())
		assert.Equal(t, 1, bundle.TitleIndex.Len(), "indexes rebuilt with the snapshot")
	})
}
