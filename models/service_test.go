package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestServiceGetPrice(t *testing.T) {
	service := &Service{
		ID:    1,
		Name:  "Massage",
		Price: 40,
		Variations: map[int]ServiceVariation{
			7: {Price: floatPtr(35)},
		},
	}

	// Same inputs, same price.
	assert.Equal(t, service.GetPrice(0, 1), service.GetPrice(0, 1))

	assert.Equal(t, 40.0, service.GetPrice(0, 1))
	assert.Equal(t, 35.0, service.GetPrice(7, 1))

	// Without MultiplyPrice, capacity does not scale the price.
	assert.Equal(t, 40.0, service.GetPrice(0, 3))

	service.MultiplyPrice = true
	assert.Equal(t, 120.0, service.GetPrice(0, 3))
	assert.Equal(t, 70.0, service.GetPrice(7, 2))
}

func TestServiceGetPriceDefaultsCapacityToMin(t *testing.T) {
	service := &Service{Price: 10, MultiplyPrice: true, MinCapacity: 2, MaxCapacity: 6}

	assert.Equal(t, 20.0, service.GetPrice(0, 0))
	assert.Equal(t, 20.0, service.GetPrice(0, -1))
}

func TestServiceGetDuration(t *testing.T) {
	service := &Service{
		Duration: 60,
		Variations: map[int]ServiceVariation{
			7: {Duration: intPtr(45)},
		},
	}

	assert.Equal(t, 60, service.GetDuration(0))
	assert.Equal(t, 45, service.GetDuration(7))
}

func TestServiceCapacityRange(t *testing.T) {
	service := &Service{
		MinCapacity: 1,
		MaxCapacity: 2,
		Variations: map[int]ServiceVariation{
			7: {MinCapacity: intPtr(1), MaxCapacity: intPtr(4)},
		},
	}

	min, max := service.GetCapacityRange(0)
	assert.Equal(t, 1, min)
	assert.Equal(t, 2, max)

	min, max = service.GetCapacityRange(7)
	assert.Equal(t, 1, min)
	assert.Equal(t, 4, max)
}

func TestServiceCapacityFallbacks(t *testing.T) {
	service := &Service{}

	// Unset bounds collapse to a sane [1, 1] range.
	min, max := service.GetCapacityRange(0)
	assert.Equal(t, 1, min)
	assert.Equal(t, 1, max)

	// A max below min is lifted to min.
	service = &Service{MinCapacity: 3, MaxCapacity: 2}
	min, max = service.GetCapacityRange(0)
	assert.Equal(t, 3, min)
	assert.Equal(t, 3, max)
}
