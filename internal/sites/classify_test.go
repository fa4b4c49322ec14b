package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capital-ej/ejatlas-cli/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want model.SiteCategory
	}{
		{"02", model.CategoryHazardous},
		{"03", model.CategoryHazardous},
		{"04", model.CategoryHazardous},
		{"A", model.CategoryHazardous},
		{"P", model.CategoryHazardous},
		{"PR", model.CategoryHazardous},
		{"05", model.CategoryRemediated},
		{"C", model.CategoryRemediated},
		{"N", model.CategoryRemediated},
		{"X", model.CategoryExcluded},
		{"", model.CategoryExcluded},
		{"a", model.CategoryExcluded},  // case-sensitive closed set
		{"2", model.CategoryExcluded},  // codes are zero-padded
		{"06", model.CategoryExcluded},
	}

	for _, tt := range tests {
		t.Run("code_"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	// Same code, same bucket, every time.
	for i := 0; i < 3; i++ {
		assert.Equal(t, model.CategoryHazardous, Classify("02"))
		assert.Equal(t, model.CategoryRemediated, Classify("05"))
	}
}
