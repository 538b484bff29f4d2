package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestValidateConfigErrors(t *testing.T) {
	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CategoryWeight = -1
		err := ValidateConfig(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "category_weight must be >= 0")
	})

	t.Run("core floor below min score", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CoreFloor = 10
		err := ValidateConfig(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "core_floor must be >= min_score")
	})

	t.Run("zero max results", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxResults = 0
		err := ValidateConfig(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_results must be > 0")
	})

	t.Run("negative tier caps", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxHigh = -1
		err := ValidateConfig(cfg)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_high and max_medium must be >= 0")
	})
}
