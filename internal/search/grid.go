package search

import (
	"math"

	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
)

const (
	// MaxStars is the length of a rating bar
	MaxStars = 5

	// Terminal widths at which the product grid gains a column
	WideWidth   = 120
	MediumWidth = 80
)

// ColumnsForWidth returns the product grid column count for a terminal width
func ColumnsForWidth(width int) int {
	switch {
	case width >= WideWidth:
		return 3
	case width >= MediumWidth:
		return 2
	default:
		return 1
	}
}

// Rows returns the number of grid rows needed for n products
func Rows(n, columns int) int {
	if n <= 0 || columns <= 0 {
		return 0
	}
	return (n + columns - 1) / columns
}

// Index maps a grid cell to a product index
func Index(row, col, columns int) int {
	return row*columns + col
}

// At returns the product in a grid cell, or nil past the end
func At(products []healthsearch.Product, row, col, columns int) *healthsearch.Product {
	if row < 0 || col < 0 || col >= columns {
		return nil
	}
	i := Index(row, col, columns)
	if i >= len(products) {
		return nil
	}
	return &products[i]
}

// Stars splits a rating into full, half and empty stars
func Stars(rating float64) (full, half, empty int) {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}

	full = int(math.Floor(rating))
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	empty = MaxStars - full - half
	return full, half, empty
}
