package checker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cogumbreiro/apisan/internal/symbol"
)

// encodeIntervals builds a canonical, comparable string key for an
// interval list, sorted by (Lo, Hi) so that two textually-different but
// set-equal constraints (e.g. parsed from different Assume texts) collapse
// to the same context value, per spec.md §3's Context requiring a
// comparable context_value. Limit-constant names are not part of the key:
// they are a rendering hint re-derived from the numeric bounds by the
// report package (symbol.NameForValue), never part of identity.
func encodeIntervals(ivs []symbol.Interval) string {
	sorted := make([]symbol.Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lo != sorted[j].Lo {
			return sorted[i].Lo < sorted[j].Lo
		}
		return sorted[i].Hi < sorted[j].Hi
	})
	parts := make([]string, len(sorted))
	for i, iv := range sorted {
		parts[i] = fmt.Sprintf("%d,%d", iv.Lo, iv.Hi)
	}
	return strings.Join(parts, ";")
}

// decodeIntervals inverts encodeIntervals for report rendering.
func decodeIntervals(key string) []symbol.Interval {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ";")
	out := make([]symbol.Interval, 0, len(parts))
	for _, p := range parts {
		bounds := strings.SplitN(p, ",", 2)
		if len(bounds) != 2 {
			continue
		}
		lo, err1 := strconv.ParseInt(bounds[0], 10, 64)
		hi, err2 := strconv.ParseInt(bounds[1], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, symbol.Interval{Lo: lo, Hi: hi})
	}
	return out
}
