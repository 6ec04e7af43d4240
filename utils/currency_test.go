package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:         "Rp 0",
		500:       "Rp 500",
		1500:      "Rp 1.500",
		75000:     "Rp 75.000",
		120000:    "Rp 120.000",
		1234567:   "Rp 1.234.567",
		-1500:     "-Rp 1.500",
		100000000: "Rp 100.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(in), "%d", in)
	}
}
