package failover

import "strings"

// LoopbackOrigin is always probed last so local development keeps working
// without any configuration.
const LoopbackOrigin = "http://127.0.0.1:8000"

// Origins builds the ordered list of base URLs to probe. An explicit override
// wins outright, then configured origins, then any runtime-discovered
// origins, then the loopback fallback. Entries are normalized (trailing
// slashes stripped) and deduplicated preserving first position.
func Origins(override string, configured []string, runtime []string) []string {
	candidates := make([]string, 0, len(configured)+len(runtime)+2)
	candidates = append(candidates, override)
	candidates = append(candidates, configured...)
	candidates = append(candidates, runtime...)
	candidates = append(candidates, LoopbackOrigin)

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, raw := range candidates {
		origin := strings.TrimRight(strings.TrimSpace(raw), "/")
		if origin == "" {
			continue
		}
		if _, dup := seen[origin]; dup {
			continue
		}
		seen[origin] = struct{}{}
		out = append(out, origin)
	}

	return out
}
