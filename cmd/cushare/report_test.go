package main

import (
	"testing"
	"time"
)

func TestParseTimeFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"2025-08-15", time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), false},
		{"2025-08-15T13:45:21Z", time.Date(2025, 8, 15, 13, 45, 21, 0, time.UTC), false},
		{"15/08/2025", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := parseTimeFlag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimeFlag(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimeFlag(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
