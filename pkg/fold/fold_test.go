package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/speaknative/verbgen/pkg/fold"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"tendrá", "tendra"},
		{"Tendrá", "tendra"},
		{"tendré", "tendre"},
		{"  habló ", "hablo"},
		{"will have", "will have"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, fold.Key(tt.in))
		})
	}
}
