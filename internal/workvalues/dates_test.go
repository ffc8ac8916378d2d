package workvalues

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"07/2014", time.Date(2014, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"2023-01-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2023-01", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"06/15/2021", time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"2021", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"44927", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"soon", time.Time{}, false},
		{"-5", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}
