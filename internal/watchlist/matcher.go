package watchlist

import "github.com/TemirB/kaspi-feedback/internal/domain"

// Match returns the first entry whose code is on the watch-list, either
// verbatim or through its base code. The matched code is the full code when
// the entry had one.
func Match(entries []domain.Entry, cs *CodeSet) (domain.Match, bool) {
	for _, e := range entries {
		if e.Code == "" {
			continue
		}
		base := Base(e.Code)
		if cs.HasFull(e.Code) || (base != "" && cs.HasBase(base)) {
			return domain.Match{Name: e.Name, Code: e.Code}, true
		}
	}
	return domain.Match{}, false
}
