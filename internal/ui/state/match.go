package state

import (
	"slices"
	"strings"

	"github.com/atomicstack/pie-launcher/internal/directory"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterApps keeps the apps whose label fuzzily contains query. When no
// label matches, desktop ids are searched instead, so "nautilus" still finds
// "Files".
func FilterApps(apps []directory.App, query string) []directory.App {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(apps)
	}
	for _, key := range []func(directory.App) string{appLabel, appID} {
		if hits := fuzzyHits(apps, query, key); len(hits) > 0 {
			out := make([]directory.App, 0, len(hits))
			for i, app := range apps {
				if hits[i] {
					out = append(out, app)
				}
			}
			return out
		}
	}
	return nil
}

func appLabel(app directory.App) string { return app.Label }
func appID(app directory.App) string    { return app.Package }

func fuzzyHits(apps []directory.App, query string, key func(directory.App) string) map[int]bool {
	targets := make([]string, len(apps))
	for i, app := range apps {
		targets[i] = key(app)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	hits := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		hits[r.OriginalIndex] = true
	}
	return hits
}

// Match tiers, best first.
const (
	tierExact = iota
	tierLabelPrefix
	tierIDPrefix
	tierFuzzy
	tierNone
)

// BestMatchIndex returns the app the query most likely names: an exact label
// or id, then a label prefix, then an id prefix, then the closest fuzzy label.
// Ties go to the earlier app; with no candidate the first app is chosen.
func BestMatchIndex(apps []directory.App, query string) int {
	if len(apps) == 0 {
		return -1
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}
	best, bestTier, bestDist := 0, tierNone, 0
	for i, app := range apps {
		tier, dist := matchTier(app, query)
		if tier < bestTier || (tier == bestTier && tier == tierFuzzy && dist < bestDist) {
			best, bestTier, bestDist = i, tier, dist
		}
	}
	return best
}

func matchTier(app directory.App, query string) (int, int) {
	lower := strings.ToLower(query)
	switch {
	case strings.EqualFold(app.Label, query), strings.EqualFold(app.Package, query):
		return tierExact, 0
	case strings.HasPrefix(strings.ToLower(app.Label), lower):
		return tierLabelPrefix, 0
	case strings.HasPrefix(strings.ToLower(app.Package), lower):
		return tierIDPrefix, 0
	}
	if dist := fuzzy.RankMatchNormalizedFold(query, app.Label); dist >= 0 {
		return tierFuzzy, dist
	}
	return tierNone, 0
}
