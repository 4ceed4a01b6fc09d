package domain

// Product represents one catalog row. Products are immutable once loaded
// into a CatalogSnapshot and are replaced wholesale on catalog refresh.
type Product struct {
	ID         string  `json:"product_id"`
	Title      string  `json:"title"`
	Brand      string  `json:"brand,omitempty"`
	Category   string  `json:"category_name"`
	Price      float64 `json:"price"`
	Rating     float64 `json:"rating"`
	EcoGrade   string  `json:"eco_rating"`
	WaterGrade string  `json:"water_rating"`
	Tags       string  `json:"tags,omitempty"` // derived text blob, built at load time
}

// UserProfile carries the per-request personalization signals. It is
// supplied by the caller on every request and never persisted here.
type UserProfile struct {
	SearchHistory   []string           `json:"searchHistory,omitempty"`
	PurchaseHistory []string           `json:"purchaseHistory,omitempty"`
	Weights         map[string]float64 `json:"weights,omitempty"`
	PriceTolerance  float64            `json:"priceTolerance,omitempty"`

	// Sustainability progress fields, used only by the motivation generator.
	EcoScore    float64 `json:"ecoScore,omitempty"`
	WaterScore  float64 `json:"waterScore,omitempty"`
	CarbonSaved float64 `json:"carbonSaved,omitempty"`
	WaterSaved  float64 `json:"waterSaved,omitempty"`
}

// WeightVector is a resolved set of scoring weights. Weights need not sum
// to 1; missing keys are filled from documented defaults at resolution time.
type WeightVector struct {
	Rating float64
	Carbon float64
	Water  float64
}
