package soc

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"131081", "13-1081"},
		{"13-1081", "13-1081"},
		{"13108", "13-108"},
		{"1310811", "13-10811"},
		{"13-10811", "13-10811"},
		{"15-1252.00", "15-12520-0"},
		{"15125200", "15-12520-0"},
		{" 11 1011 ", "11-1011"},
		{"1234", "1234"},
		{" n/a ", "n/a"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Shapes(t *testing.T) {
	long := regexp.MustCompile(`^\d{2}-\d{5}(-\d+)?$`)
	for n := 7; n <= 12; n++ {
		digits := strings.Repeat("7", n)
		got := Normalize(digits)
		assert.Regexp(t, long, got, "len %d", n)
		assert.Equal(t, digits, strings.ReplaceAll(got, "-", ""))
	}

	assert.Regexp(t, `^\d{2}-\d{3}$`, Normalize("12345"))
	assert.Regexp(t, `^\d{2}-\d{4}$`, Normalize("123456"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"131081", "13-1081", "15-1252.00", "1234567", "12345", "abc", "", "1-2-3-4-5-6-7-8-9"}
	for n := 1; n <= 14; n++ {
		inputs = append(inputs, strings.Repeat("9", n), fmt.Sprintf("%0*d", n, n))
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeAll(t *testing.T) {
	vals := []string{"131081", " ", "13-1081"}
	got := NormalizeAll(vals)
	assert.Equal(t, []string{"13-1081", "", "13-1081"}, got)
}
