package ratelimit

import "strings"

// CategoryLimits holds the quota configuration for one endpoint category.
// A category can carry per-operation quotas, a flat quota, or both; when an
// operation is not listed the flat quota applies, and when that is zero the
// table default applies.
type CategoryLimits struct {
	Limit      int
	Operations map[string]int
}

// Limits maps endpoint categories to per-minute quotas.
type Limits struct {
	Default    int
	Categories map[string]CategoryLimits
}

// DefaultLimits returns the standard quota table (requests per minute).
func DefaultLimits() Limits {
	return Limits{
		Default: 60,
		Categories: map[string]CategoryLimits{
			"resume": {Operations: map[string]int{
				"parse":   10,
				"enhance": 5,
				"analyze": 5,
			}},
			"jobs": {Operations: map[string]int{
				"search": 30,
				"apply":  20,
			}},
			"auth": {Operations: map[string]int{
				"login":    10,
				"register": 5,
			}},
		},
	}
}

// Resolve returns the quota for an endpoint key. The first path segment is
// the category and the second, when present, the operation. Endpoints with
// fewer than two segments resolve to the default quota.
func (l Limits) Resolve(endpoint string) int {
	parts := strings.Split(endpoint, "/")
	if len(parts) < 2 {
		return l.Default
	}

	category := parts[1]

	operation := ""
	if len(parts) > 2 {
		operation = parts[2]
	}

	cat, ok := l.Categories[category]
	if !ok {
		return l.Default
	}

	if operation != "" {
		if limit, ok := cat.Operations[operation]; ok {
			return limit
		}
	}

	if cat.Limit > 0 {
		return cat.Limit
	}

	return l.Default
}
