package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ecomart/backend/internal/domain"
)

// Blend weights for the pipeline score formulas.
const (
	querySimilarityWeight   = 0.6 // similarity share in search/history blends
	querySustainabilityWeight = 0.4

	searchTitleWeight    = 0.7 // title vs category share of search similarity
	searchCategoryWeight = 0.3

	cartTitleWeight          = 0.5
	cartCategoryWeight       = 0.2
	cartSustainabilityWeight = 0.3

	// Sustainability is normalized to [0,1] by a fixed /5 regardless of the
	// weight sum. Kept as-is for compatibility: weights summing above 1 can
	// push blended scores outside [0,1].
	sustainabilityDivisor = 5.0

	priceToleranceStep = 0.05
	priceToleranceMax  = 0.5
)

// ScoredProduct augments a catalog row with the transient scores of one
// ranking call. It never outlives the call.
type ScoredProduct struct {
	Product        domain.Product
	Row            int // snapshot row index, used for stable tie order
	Similarity     float64
	Sustainability float64
	FinalScore     float64
}

// RankingConfig holds configuration for the recommendation service
type RankingConfig struct {
	SearchTopK            int
	CartTopK              int
	DefaultPriceTolerance float64
	DuplicateThreshold    float64
	CacheTTL              time.Duration
}

// RecommendationService runs the three ranking pipelines against the
// current catalog bundle. Each call is a synchronous read-only
// computation; any number may run concurrently over a shared bundle.
type RecommendationService struct {
	bundles            BundleProvider
	cache              domain.CacheRepository
	searchTopK         int
	cartTopK           int
	defaultTolerance   float64
	duplicateThreshold float64
	cacheTTL           time.Duration
}

// NewRecommendationService creates a recommendation service. The cache is
// optional; pass nil to recompute every request.
func NewRecommendationService(bundles BundleProvider, cache domain.CacheRepository, config RankingConfig) *RecommendationService {
	searchTopK := config.SearchTopK
	if searchTopK <= 0 {
		searchTopK = 20
	}
	cartTopK := config.CartTopK
	if cartTopK <= 0 {
		cartTopK = 10
	}
	tolerance := config.DefaultPriceTolerance
	if tolerance <= 0 || tolerance > priceToleranceMax {
		tolerance = 0.2
	}
	threshold := config.DuplicateThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Second
	}

	return &RecommendationService{
		bundles:            bundles,
		cache:              cache,
		searchTopK:         searchTopK,
		cartTopK:           cartTopK,
		defaultTolerance:   tolerance,
		duplicateThreshold: threshold,
		cacheTTL:           cacheTTL,
	}
}

// HomeRecommendations ranks the catalog for an existing user from search
// and purchase history. A user with no usable history signals gets the
// whole catalog ranked purely by sustainability (new-user fallback).
// Already-purchased products and near-duplicates of them never appear.
func (s *RecommendationService) HomeRecommendations(ctx context.Context, profile *domain.UserProfile) ([]string, error) {
	bundle := s.bundles.Current()
	if bundle == nil || bundle.Snapshot.Len() == 0 {
		return []string{}, nil
	}
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	weights := ResolveWeights(profile.Weights)
	tolerance := s.resolveTolerance(profile.PriceTolerance)

	purchased := make(map[string]bool, len(profile.PurchaseHistory))
	for _, id := range profile.PurchaseHistory {
		purchased[id] = true
	}
	purchasedCategories := make(map[string]bool)
	var purchasedTitles []string
	var purchasedPriceSum float64
	var purchasedCount int
	for _, p := range bundle.Snapshot.Products() {
		if purchased[p.ID] {
			purchasedCategories[p.Category] = true
			purchasedTitles = append(purchasedTitles, p.Title)
			purchasedPriceSum += p.Price
			purchasedCount++
		}
	}
	hasAvgPrice := purchasedCount > 0
	var avgPurchasePrice float64
	if hasAvgPrice {
		avgPurchasePrice = purchasedPriceSum / float64(purchasedCount)
	}

	var candidates []ScoredProduct
	if len(profile.SearchHistory) > 0 {
		candidates = append(candidates, s.fromSearchHistory(bundle, profile.SearchHistory, weights)...)
	}
	if len(profile.PurchaseHistory) > 0 {
		candidates = append(candidates, fromPurchaseHistory(bundle, purchasedCategories, avgPurchasePrice, hasAvgPrice, weights, tolerance)...)
	}

	if len(candidates) == 0 {
		return sustainabilityRanking(bundle, weights), nil
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if !purchased[c.Product.ID] {
			kept = append(kept, c)
		}
	}
	candidates = RemoveNearDuplicates(kept, purchasedTitles, bundle.TitleIndex, s.duplicateThreshold)
	candidates = collapseByID(candidates)

	sortByFinalScore(candidates)
	return productIDs(candidates), nil
}

// fromSearchHistory scores the catalog against each past query over the
// tags index. A product may enter once per matching query; the later
// collapse by ID merges the duplicates.
func (s *RecommendationService) fromSearchHistory(bundle *CatalogBundle, searchHistory []string, weights domain.WeightVector) []ScoredProduct {
	var out []ScoredProduct
	for _, query := range searchHistory {
		vec, err := bundle.TagIndex.Vectorize(query)
		if err != nil {
			// Home stays resilient to vectorizer faults: the query simply
			// contributes no candidates.
			log.Printf("home: tag vectorizer unavailable for query %q: %v", query, err)
			continue
		}
		sims := bundle.TagIndex.Similarities(vec)
		for i, p := range bundle.Snapshot.Products() {
			if sims[i] <= 0 {
				continue
			}
			sustainability := SustainabilityScore(p, weights)
			out = append(out, ScoredProduct{
				Product:        p,
				Row:            i,
				Similarity:     sims[i],
				Sustainability: sustainability,
				FinalScore:     querySimilarityWeight*sims[i] + querySustainabilityWeight*(sustainability/sustainabilityDivisor),
			})
		}
	}
	return out
}

// fromPurchaseHistory restricts the catalog to the purchased categories
// and, when an average purchase price exists, to the tolerance band
// around it. Purchase affinity carries no similarity term; the score is
// sustainability alone.
func fromPurchaseHistory(bundle *CatalogBundle, categories map[string]bool, avgPrice float64, hasAvgPrice bool, weights domain.WeightVector, tolerance float64) []ScoredProduct {
	var out []ScoredProduct
	for i, p := range bundle.Snapshot.Products() {
		if len(categories) > 0 && !categories[p.Category] {
			continue
		}
		if hasAvgPrice {
			if p.Price < avgPrice*(1-tolerance) || p.Price > avgPrice*(1+tolerance) {
				continue
			}
		}
		sustainability := SustainabilityScore(p, weights)
		out = append(out, ScoredProduct{
			Product:        p,
			Row:            i,
			Sustainability: sustainability,
			FinalScore:     sustainability / sustainabilityDivisor,
		})
	}
	return out
}

// sustainabilityRanking is the new-user fallback: the full catalog sorted
// purely by sustainability score.
func sustainabilityRanking(bundle *CatalogBundle, weights domain.WeightVector) []string {
	scored := make([]ScoredProduct, 0, bundle.Snapshot.Len())
	for i, p := range bundle.Snapshot.Products() {
		score := SustainabilityScore(p, weights)
		scored = append(scored, ScoredProduct{
			Product:        p,
			Row:            i,
			Sustainability: score,
			FinalScore:     score,
		})
	}
	sortByFinalScore(scored)
	return productIDs(scored)
}

// collapseByID merges duplicate candidates for the same product: first
// title/category/price, max similarity, mean sustainability, max final
// score. Output keeps first-appearance order.
func collapseByID(candidates []ScoredProduct) []ScoredProduct {
	type agg struct {
		index            int
		sustainabilitySum float64
		count            int
	}
	byID := make(map[string]*agg, len(candidates))
	merged := make([]ScoredProduct, 0, len(candidates))
	for _, c := range candidates {
		a, ok := byID[c.Product.ID]
		if !ok {
			merged = append(merged, c)
			byID[c.Product.ID] = &agg{index: len(merged) - 1, sustainabilitySum: c.Sustainability, count: 1}
			continue
		}
		m := &merged[a.index]
		if c.Similarity > m.Similarity {
			m.Similarity = c.Similarity
		}
		if c.FinalScore > m.FinalScore {
			m.FinalScore = c.FinalScore
		}
		a.sustainabilitySum += c.Sustainability
		a.count++
	}
	for _, a := range byID {
		merged[a.index].Sustainability = a.sustainabilitySum / float64(a.count)
	}
	return merged
}

// SearchRecommendations ranks the catalog against a free-text query.
// Title similarity dominates category similarity 0.7/0.3; the blend with
// sustainability mirrors the home search branch. An empty query is not
// an error, it is an empty result. This is the only pipeline that
// surfaces a vectorizer fault to the caller.
func (s *RecommendationService) SearchRecommendations(ctx context.Context, profile *domain.UserProfile, query string) ([]string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []string{}, nil
	}
	bundle := s.bundles.Current()
	if bundle == nil || bundle.Snapshot.Len() == 0 {
		return []string{}, nil
	}
	var rawWeights map[string]float64
	if profile != nil {
		rawWeights = profile.Weights
	}
	weights := ResolveWeights(rawWeights)

	cacheKey := s.searchCacheKey(q, weights)
	if ids, ok := s.cachedIDs(ctx, cacheKey); ok {
		return ids, nil
	}

	titleVec, err := bundle.TitleIndex.Vectorize(q)
	if err != nil {
		return nil, fmt.Errorf("title similarity: %w", err)
	}
	categoryVec, err := bundle.CategoryIndex.Vectorize(q)
	if err != nil {
		return nil, fmt.Errorf("category similarity: %w", err)
	}
	titleSims := bundle.TitleIndex.Similarities(titleVec)
	categorySims := bundle.CategoryIndex.Similarities(categoryVec)

	scored := make([]ScoredProduct, 0, bundle.Snapshot.Len())
	for i, p := range bundle.Snapshot.Products() {
		similarity := searchTitleWeight*titleSims[i] + searchCategoryWeight*categorySims[i]
		sustainability := SustainabilityScore(p, weights)
		scored = append(scored, ScoredProduct{
			Product:        p,
			Row:            i,
			Similarity:     similarity,
			Sustainability: sustainability,
			FinalScore:     querySimilarityWeight*similarity + querySustainabilityWeight*(sustainability/sustainabilityDivisor),
		})
	}
	sortByFinalScore(scored)
	if len(scored) > s.searchTopK {
		scored = scored[:s.searchTopK]
	}
	ids := productIDs(scored)
	s.storeIDs(ctx, cacheKey, ids)
	return ids, nil
}

// CartAlternatives recommends up to topK substitutes for the product in
// the cart that are at least as sustainable, price-comparable (with the
// tolerance band widened step by step until enough candidates survive),
// and ranked by title similarity, category affinity, and sustainability.
func (s *RecommendationService) CartAlternatives(ctx context.Context, profile *domain.UserProfile, productID string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = s.cartTopK
	}
	bundle := s.bundles.Current()
	if bundle == nil || bundle.Snapshot.Len() == 0 {
		return []string{}, nil
	}
	if productID == "" {
		return []string{}, nil
	}
	target, ok := bundle.Snapshot.ByID(productID)
	if !ok {
		return []string{}, nil
	}
	var rawWeights map[string]float64
	var rawTolerance float64
	if profile != nil {
		rawWeights = profile.Weights
		rawTolerance = profile.PriceTolerance
	}
	weights := ResolveWeights(rawWeights)
	tolerance := s.resolveTolerance(rawTolerance)

	cacheKey := s.cartCacheKey(productID, weights, tolerance, topK)
	if ids, ok := s.cachedIDs(ctx, cacheKey); ok {
		return ids, nil
	}

	targetScore := SustainabilityScore(target, weights)

	// Improve-or-match filter: never suggest something less sustainable.
	var pool []ScoredProduct
	for i, p := range bundle.Snapshot.Products() {
		if p.ID == productID {
			continue
		}
		score := SustainabilityScore(p, weights)
		if score < targetScore {
			continue
		}
		pool = append(pool, ScoredProduct{Product: p, Row: i, Sustainability: score})
	}

	candidates := widenPriceBand(pool, target.Price, tolerance, topK)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	// Title similarity against the index fitted over the full catalog, so
	// term weights are not skewed by the pre-filtered pool.
	targetVec, err := bundle.TitleIndex.Vectorize(target.Title)
	if err != nil {
		log.Printf("cart: title vectorizer unavailable for %q: %v", productID, err)
		targetVec = nil
	}
	for i := range candidates {
		c := &candidates[i]
		if targetVec != nil {
			if vec, err := bundle.TitleIndex.Vectorize(c.Product.Title); err == nil {
				c.Similarity = CosineSimilarity(vec, targetVec)
			}
		}
		categoryScore := categoryAffinity(c.Product.Category, target.Category)
		c.FinalScore = cartTitleWeight*c.Similarity +
			cartCategoryWeight*categoryScore +
			cartSustainabilityWeight*(c.Sustainability/sustainabilityDivisor)
	}

	sortByFinalScore(candidates)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	ids := productIDs(candidates)
	s.storeIDs(ctx, cacheKey, ids)
	return ids, nil
}

// widenPriceBand filters the pool to the tolerance band around the target
// price, widening the band in 0.05 steps (always refiltering the original
// pool) until topK candidates survive or the 0.5 cap is passed. The last
// filtered set is kept either way.
func widenPriceBand(pool []ScoredProduct, targetPrice, tolerance float64, topK int) []ScoredProduct {
	var filtered []ScoredProduct
	for {
		filtered = filtered[:0]
		lo, hi := targetPrice*(1-tolerance), targetPrice*(1+tolerance)
		for _, c := range pool {
			if c.Product.Price >= lo && c.Product.Price <= hi {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) >= topK {
			break
		}
		tolerance += priceToleranceStep
		if tolerance > priceToleranceMax {
			break
		}
	}
	out := make([]ScoredProduct, len(filtered))
	copy(out, filtered)
	return out
}

// categoryAffinity scores how related two category labels are: identical
// 1.0, one a substring of the other 0.5 (hierarchical labels like
// "Personal Care > Soap"), otherwise 0.
func categoryAffinity(category, targetCategory string) float64 {
	switch {
	case category == targetCategory:
		return 1.0
	case strings.Contains(category, targetCategory) || strings.Contains(targetCategory, category):
		return 0.5
	default:
		return 0.0
	}
}

func (s *RecommendationService) resolveTolerance(tolerance float64) float64 {
	if tolerance <= 0 {
		return s.defaultTolerance
	}
	if tolerance > priceToleranceMax {
		return priceToleranceMax
	}
	return tolerance
}

// sortByFinalScore orders descending by final score; ties keep snapshot
// row order (stable sort over row-ordered input).
func sortByFinalScore(scored []ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})
}

func productIDs(scored []ScoredProduct) []string {
	ids := make([]string, len(scored))
	for i, c := range scored {
		ids[i] = c.Product.ID
	}
	return ids
}

// searchCacheKey normalizes the query and weights into a cache key.
func (s *RecommendationService) searchCacheKey(query string, w domain.WeightVector) string {
	return fmt.Sprintf("search:%s:%.3f:%.3f:%.3f", strings.ToLower(query), w.Rating, w.Carbon, w.Water)
}

func (s *RecommendationService) cartCacheKey(productID string, w domain.WeightVector, tolerance float64, topK int) string {
	return fmt.Sprintf("cart:%s:%.3f:%.3f:%.3f:%.2f:%d", productID, w.Rating, w.Carbon, w.Water, tolerance, topK)
}

// cachedIDs reads a previously computed ID list from the cache. Values
// come back from the JSON round-trip as []interface{}.
func (s *RecommendationService) cachedIDs(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, false
			}
			ids = append(ids, id)
		}
		return ids, true
	}
	return nil, false
}

func (s *RecommendationService) storeIDs(ctx context.Context, key string, ids []string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, ids, s.cacheTTL); err != nil {
		log.Printf("result cache set failed for %s: %v", key, err)
	}
}
