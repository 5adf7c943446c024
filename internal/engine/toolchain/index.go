package toolchain

import (
	"fmt"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// indexRouteTemplate is the cache cell coordinate format. Changing it
// orphans every previously written cache entry.
const indexRouteTemplate = "cache.level-%d.toolchains.v1.%s.%s"

// IndexPlan is the outcome of cache route planning: the ordered lookup
// list and the single route a completed build is published under.
type IndexPlan struct {
	// ReadRoutes is probed from the most trusted level down to the
	// level of the current run; the first hit wins.
	ReadRoutes []string

	// WriteRoute is registered at the current run's level only, so a
	// build never populates caches more trusted than the environment
	// that produced it.
	WriteRoute string
}

// PlanCacheIndex produces the cache routes for a digest. The route name
// is the job label with the generating kind's prefix stripped. Levels
// above the ceiling are clamped to it.
func PlanCacheIndex(digest, label, kind string, level int) IndexPlan {
	name := strings.TrimPrefix(label, kind+"-")
	if level > domain.MaxTrustLevel {
		level = domain.MaxTrustLevel
	}

	reads := make([]string, 0, domain.MaxTrustLevel-level+1)
	for l := domain.MaxTrustLevel; l >= level; l-- {
		reads = append(reads, fmt.Sprintf(indexRouteTemplate, l, name, digest))
	}

	return IndexPlan{
		ReadRoutes: reads,
		WriteRoute: fmt.Sprintf(indexRouteTemplate, level, name, digest),
	}
}
