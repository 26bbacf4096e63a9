package ipv4calc

import (
	"fmt"
	"sort"
	"strings"
)

// ParsePool parses a pool specification into an inclusive uint32 interval.
// Accepted forms are "start-end" (whitespace around either side is ignored)
// and a single address, which yields start == end.
func ParsePool(pool string) (start, end uint32, err error) {
	startPart, endPart, ok := strings.Cut(pool, "-")
	if !ok {
		startPart, endPart = pool, pool
	}

	start, err = ParseIPv4(strings.TrimSpace(startPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPool, pool)
	}
	end, err = ParseIPv4(strings.TrimSpace(endPart))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPool, pool)
	}

	if start > end {
		return 0, 0, fmt.Errorf("%w: %q", ErrPoolReversed, pool)
	}
	return start, end, nil
}

// PoolWithinCIDR reports whether both endpoints of the pool lie inside the
// CIDR block's [network, broadcast] interval. Unparsable input yields false.
func PoolWithinCIDR(pool, cidr string) bool {
	start, end, err := ParsePool(pool)
	if err != nil {
		return false
	}
	network, broadcast, err := CIDRRange(cidr)
	if err != nil {
		return false
	}
	return network <= start && end <= broadcast
}

// PoolsOverlap reports whether any two pools in the list share an address.
// Pools that touch without sharing (end+1 == next start) do not overlap.
// Unparsable entries are skipped; callers report those separately.
func PoolsOverlap(pools []string) bool {
	type interval struct {
		start, end uint32
	}

	ranges := make([]interval, 0, len(pools))
	for _, p := range pools {
		start, end, err := ParsePool(p)
		if err != nil {
			continue
		}
		ranges = append(ranges, interval{start, end})
	}
	if len(ranges) < 2 {
		return false
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })
	for i := 0; i < len(ranges)-1; i++ {
		if ranges[i].end >= ranges[i+1].start {
			return true
		}
	}
	return false
}
