package catalog

import (
	"strings"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/usecase"
)

// tagColumns are the text fields a product's tag blob is derived from.
var tagColumns = []func(domain.Product) string{
	func(p domain.Product) string { return p.Title },
	func(p domain.Product) string { return p.Brand },
	func(p domain.Product) string { return p.Category },
}

// extractTags derives the tag blob for one product: every text column is
// lowercased, reduced to alphanumeric tokens, stripped of stop words, and
// the surviving tokens joined comma-separated.
func extractTags(p domain.Product) string {
	parts := make([]string, 0, len(tagColumns))
	for _, column := range tagColumns {
		tokens := usecase.Tokenize(column(p))
		parts = append(parts, strings.Join(tokens, ","))
	}
	return strings.Join(parts, ", ")
}

// preprocess fills the derived Tags field for every loaded row. Rows that
// already carry tags (pre-tagged catalog exports) keep them.
func preprocess(products []domain.Product) []domain.Product {
	for i := range products {
		if products[i].Tags == "" {
			products[i].Tags = extractTags(products[i])
		}
	}
	return products
}
