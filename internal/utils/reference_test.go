package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizflow/erp_backend/internal/utils"
)

func TestNewBusinessRef(t *testing.T) {
	refPattern := regexp.MustCompile(`^INV-[0-9A-F]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := utils.NewBusinessRef("INV")
		assert.Regexp(t, refPattern, ref)
		assert.False(t, seen[ref], "duplicate reference generated: %s", ref)
		seen[ref] = true
	}
}

func TestNewBusinessRef_Prefixes(t *testing.T) {
	assert.Regexp(t, `^PAY-`, utils.NewBusinessRef("PAY"))
	assert.Regexp(t, `^EXP-`, utils.NewBusinessRef("EXP"))
	assert.Regexp(t, `^CHQ-`, utils.NewBusinessRef("CHQ"))
}
