package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{
			name:  "exact duplicates",
			items: []string{"Vladimir Putin", "vladimir putin", "Vladimir Putin"},
			want:  []string{"Vladimir Putin"},
		},
		{
			name:  "short form after long form is dropped",
			items: []string{"Vladimir Putin", "Putin"},
			want:  []string{"Vladimir Putin"},
		},
		{
			name:  "long form replaces earlier short form in place",
			items: []string{"Putin", "Gazprom", "Vladimir Putin"},
			want:  []string{"Vladimir Putin", "Gazprom"},
		},
		{
			name:  "several short forms collapse into one long form",
			items: []string{"Vladimir", "Putin", "Vladimir Putin"},
			want:  []string{"Vladimir Putin"},
		},
		{
			name:  "wordpiece markers are ignored for comparison",
			items: []string{"Gaz##prom", "Gazprom"},
			want:  []string{"Gaz##prom"},
		},
		{
			name:  "empty and blank entries are skipped",
			items: []string{"", "  ", "Banco Delta"},
			want:  []string{"Banco Delta"},
		},
		{
			name:  "unrelated names all kept in order",
			items: []string{"Nicolás Maduro", "PDVSA", "Delcy Rodríguez"},
			want:  []string{"Nicolás Maduro", "PDVSA", "Delcy Rodríguez"},
		},
		{
			name:  "empty input",
			items: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.items))
		})
	}
}

func TestNorm(t *testing.T) {
	assert.Equal(t, "vladimir putin", norm("  Vladimir Putin "))
	assert.Equal(t, "gazprom", norm("Gaz##prom"))
	assert.Equal(t, "", norm("   "))
}
