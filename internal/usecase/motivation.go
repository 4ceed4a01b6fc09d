package usecase

import (
	"fmt"
	"math/rand"

	"github.com/ecomart/backend/internal/domain"
)

// MotivationGenerator picks a personalized sustainability message from
// templated pools keyed off the user's progress fields. It is a string
// picker, not a ranking component.
type MotivationGenerator struct {
	rng *rand.Rand
}

// NewMotivationGenerator creates a generator with its own random source.
func NewMotivationGenerator(seed int64) *MotivationGenerator {
	return &MotivationGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns one motivational message for the profile. The pool
// always contains at least the low-score encouragements, so the result
// is never empty.
func (g *MotivationGenerator) Generate(profile *domain.UserProfile) string {
	if profile == nil {
		profile = &domain.UserProfile{}
	}
	var messages []string

	if profile.CarbonSaved > 0 {
		messages = append(messages,
			fmt.Sprintf("You've already saved %.1f kg of CO2. That's like planting %.0f trees.", profile.CarbonSaved, profile.CarbonSaved/21),
			fmt.Sprintf("Your choices prevented %.1f kg of CO2 emissions, enough to power a laptop for %.0f hours!", profile.CarbonSaved, profile.CarbonSaved*2),
			fmt.Sprintf("%.1f kg of CO2 saved! Imagine how clean the air feels because of you.", profile.CarbonSaved),
		)
	}
	if profile.WaterSaved > 0 {
		messages = append(messages,
			fmt.Sprintf("You've conserved %.0f liters of water. Every drop counts!", profile.WaterSaved),
			fmt.Sprintf("That's %.0f showers worth of water saved. Amazing!", profile.WaterSaved/200),
			fmt.Sprintf("%.0f liters of water saved. You're helping preserve our blue planet.", profile.WaterSaved),
		)
	}

	switch {
	case profile.EcoScore >= 80:
		messages = append(messages,
			"Incredible! Your eco score is among the top eco-warriors.",
			"You're leading the green revolution with your eco-friendly habits.",
			"Eco Legend status unlocked! Your sustainable choices are inspiring.",
		)
	case profile.EcoScore >= 50:
		messages = append(messages,
			"You're on the right track. Keep choosing sustainable options!",
			"Steady progress! Each eco choice adds up to a big change.",
			"Keep pushing, you're halfway to becoming a sustainability hero!",
		)
	default:
		messages = append(messages,
			"Small steps make a big difference. Try one more eco-friendly switch today!",
			"Every choice matters. Start small, change the world.",
			"Even tiny eco-friendly changes ripple into a huge impact.",
		)
	}

	switch {
	case profile.WaterScore >= 80:
		messages = append(messages,
			"You're a Water Hero! Your choices are saving precious water.",
			"Fantastic! Your water habits are protecting rivers and lakes.",
			"Outstanding! You're leading the way in water conservation.",
		)
	case profile.WaterScore >= 50:
		messages = append(messages,
			"Keep going, your water-saving impact is growing strong!",
			"Nice work! You're halfway to becoming a Water Saver Champion.",
			"Consistency pays off. Your water habits are creating ripples of change.",
		)
	}

	if n := len(profile.SearchHistory); n > 0 {
		lastSearch := profile.SearchHistory[n-1]
		messages = append(messages,
			fmt.Sprintf("Since you searched for %q, did you know eco alternatives could cut your footprint even more?", lastSearch),
			fmt.Sprintf("Looking for %q? Choose eco-friendly versions to make a real difference.", lastSearch),
			fmt.Sprintf("Your interest in %q shows you care. Eco options can amplify your impact.", lastSearch),
		)
	}
	if n := len(profile.PurchaseHistory); n > 0 {
		lastPurchase := profile.PurchaseHistory[n-1]
		messages = append(messages,
			fmt.Sprintf("Your purchase of %q was a sustainable win.", lastPurchase),
			fmt.Sprintf("By choosing %q, you made a smarter choice for the planet.", lastPurchase),
			fmt.Sprintf("%q is a step toward a greener future. Keep it up.", lastPurchase),
		)
	}

	return messages[g.rng.Intn(len(messages))]
}
