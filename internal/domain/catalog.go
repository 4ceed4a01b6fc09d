package domain

// CatalogSnapshot is an immutable in-memory view of the product catalog.
// A snapshot is built once from loaded rows and shared read-only across
// concurrent ranking calls; refreshes produce a whole new snapshot.
type CatalogSnapshot struct {
	products []Product
	byID     map[string]int
}

// NewCatalogSnapshot builds a snapshot over the given rows. Row order is
// preserved: text indexes built over a column of this snapshot answer
// similarities in the same order.
func NewCatalogSnapshot(products []Product) *CatalogSnapshot {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = i
		}
	}
	return &CatalogSnapshot{products: products, byID: byID}
}

// Len returns the number of catalog rows.
func (s *CatalogSnapshot) Len() int {
	return len(s.products)
}

// Products returns the catalog rows in load order. Callers must not
// modify the returned slice.
func (s *CatalogSnapshot) Products() []Product {
	return s.products
}

// At returns the row at index i.
func (s *CatalogSnapshot) At(i int) Product {
	return s.products[i]
}

// ByID looks up a product by its identifier.
func (s *CatalogSnapshot) ByID(id string) (Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Column extracts one text field across all rows, in row order.
func (s *CatalogSnapshot) Column(get func(Product) string) []string {
	out := make([]string, len(s.products))
	for i, p := range s.products {
		out[i] = get(p)
	}
	return out
}
