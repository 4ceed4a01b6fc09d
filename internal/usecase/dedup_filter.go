package usecase

// RemoveNearDuplicates drops candidates whose title is nearly identical
// to something the user already owns. For each candidate the max cosine
// similarity of its title against all purchased titles is computed with
// the fitted title index; candidates at or above the threshold are
// removed. With no purchased titles the input is returned unchanged (the
// similarity matrix would be ill-defined).
func RemoveNearDuplicates(candidates []ScoredProduct, purchasedTitles []string, titleIndex *TextIndex, threshold float64) []ScoredProduct {
	if len(purchasedTitles) == 0 || len(candidates) == 0 {
		return candidates
	}

	purchasedVecs := make([]map[string]float64, 0, len(purchasedTitles))
	for _, title := range purchasedTitles {
		vec, err := titleIndex.Vectorize(title)
		if err != nil {
			// No usable title vocabulary; suppressing nothing is the
			// neutral fallback for this filter.
			return candidates
		}
		purchasedVecs = append(purchasedVecs, vec)
	}

	kept := make([]ScoredProduct, 0, len(candidates))
	for _, c := range candidates {
		vec, err := titleIndex.Vectorize(c.Product.Title)
		if err != nil {
			kept = append(kept, c)
			continue
		}
		maxSim := 0.0
		for _, pv := range purchasedVecs {
			if sim := CosineSimilarity(vec, pv); sim > maxSim {
				maxSim = sim
			}
		}
		if maxSim < threshold {
			kept = append(kept, c)
		}
	}
	return kept
}
