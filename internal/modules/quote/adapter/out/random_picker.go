package out

import (
	"math/rand/v2"

	quoteout "thrivehub/internal/modules/quote/port/out"
)

type RandomPicker struct{}

func NewRandomPicker() quoteout.Picker {
	return RandomPicker{}
}

func (RandomPicker) Intn(n int) int {
	return rand.IntN(n)
}
