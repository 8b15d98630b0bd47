package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cogumbreiro/apisan/internal/symbol"
)

func TestHumanizeSinglePoint(t *testing.T) {
	assert.Equal(t, "== 5", humanizeIntervals([]symbol.Interval{{Lo: 5, Hi: 5}}))
}

func TestHumanizeGap(t *testing.T) {
	ivs := []symbol.Interval{{Lo: -2147483648, Hi: -1}, {Lo: 1, Hi: 2147483647}}
	assert.Equal(t, "!= 0", humanizeIntervals(ivs))
}

func TestHumanizeGapUnsignedWidth(t *testing.T) {
	ivs := []symbol.Interval{{Lo: 0, Hi: 4}, {Lo: 6, Hi: 4294967295}}
	assert.Equal(t, "!= 5", humanizeIntervals(ivs))
}

func TestHumanizeGeneralRanges(t *testing.T) {
	ivs := []symbol.Interval{{Lo: 1, Hi: 3}, {Lo: 10, Hi: 12}}
	assert.Equal(t, "in {[1,3], [10,12]}", humanizeIntervals(ivs))
}

func TestHumanizeNamesRecognizedLimits(t *testing.T) {
	ivs := []symbol.Interval{{Lo: -2147483648, Hi: 5}}
	assert.Equal(t, "in {[INT32_MIN,5]}", humanizeIntervals(ivs))
}

func TestHumanizeCtxFallsBackForNonIntervalValues(t *testing.T) {
	assert.Equal(t, "true", HumanizeCtx(true))
}
