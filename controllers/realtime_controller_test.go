package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"listed", []string{"https://app.example.com"}, "https://app.example.com", true},
		{"trailing slash in config", []string{" https://app.example.com/ "}, "https://app.example.com", true},
		{"other site", []string{"https://app.example.com"}, "https://evil.example.net", false},
		{"scheme differs", []string{"https://app.example.com"}, "http://app.example.com", false},
		{"nothing configured", nil, "https://app.example.com", false},
		{"wildcard", []string{"*"}, "https://anything.example.org", true},
		{"native client", []string{"https://app.example.com"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originChecker(tt.origins)(r))
		})
	}
}
