package usecase

import "github.com/ecomart/backend/internal/domain"

// CatalogBundle pairs a catalog snapshot with the three text indexes
// fitted over it (tags, title, category). The four are always built
// together and replaced together: mixing an index from one snapshot with
// rows from another would desynchronize vocabulary and row order.
type CatalogBundle struct {
	Snapshot      *domain.CatalogSnapshot
	TagIndex      *TextIndex
	TitleIndex    *TextIndex
	CategoryIndex *TextIndex
}

// BuildCatalogBundle builds a snapshot and its indexes from loaded rows.
func BuildCatalogBundle(products []domain.Product) *CatalogBundle {
	snapshot := domain.NewCatalogSnapshot(products)
	return &CatalogBundle{
		Snapshot:      snapshot,
		TagIndex:      BuildTextIndex(snapshot.Column(func(p domain.Product) string { return p.Tags })),
		TitleIndex:    BuildTextIndex(snapshot.Column(func(p domain.Product) string { return p.Title })),
		CategoryIndex: BuildTextIndex(snapshot.Column(func(p domain.Product) string { return p.Category })),
	}
}

// BundleProvider hands out the current catalog bundle. Implementations
// swap bundles atomically on refresh; a ranking call reads the bundle
// once and keeps using it even if a refresh lands mid-call.
type BundleProvider interface {
	Current() *CatalogBundle
}
