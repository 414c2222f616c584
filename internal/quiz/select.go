package quiz

import "math/rand/v2"

// Picker returns a uniformly random int in [0, n).
type Picker func(n int) int

// RandomPicker uses the process-wide generator.
func RandomPicker() Picker { return rand.IntN }

// Select draws one question per category, in category order. Categories
// with no questions are skipped.
func Select(b *Bank, categories []string, pick Picker) []Question {
	if pick == nil {
		pick = RandomPicker()
	}
	selected := make([]Question, 0, len(categories))
	for _, c := range categories {
		pool := b.InCategory(c)
		if len(pool) == 0 {
			continue
		}
		selected = append(selected, pool[pick(len(pool))])
	}
	return selected
}
