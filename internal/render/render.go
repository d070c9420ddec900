package render

import (
	"fmt"
	"strings"

	"github.com/cexll/threadbot/internal/feed"
)

// Thread renders the discussion post body for a day. Pure and deterministic:
// equal inputs produce byte-identical output. Rows follow snapshot order
// verbatim; the feed's own ordering and duplicates are preserved.
func Thread(prettyDate string, snap feed.Snapshot) string {
	var recent strings.Builder
	for _, s := range snap.Recent {
		fmt.Fprintf(&recent, "| [%s](%s) | %s | %s | %s | %s |\n", s.Source, s.Link, s.State, s.City, s.Platform, s.Status)
	}

	var archived strings.Builder
	for _, s := range snap.Archived {
		fmt.Fprintf(&archived, "| [%s](%s) | %s | %s | %s |\n", s.Source, s.Link, s.State, s.City, s.Platform)
	}

	return fmt.Sprintf(`
**Please use this thread to discuss daily live protest links from %s**



*Recent Live Streams*


| Source                              | State | City           | Platform  | Status  |
|-------------------------------------|-------|----------------|-----------|---------|
%s
*%s Stream Archive*


| Source                              | State | City           | Platform  |
|-------------------------------------|-------|----------------|-----------|
%s`, prettyDate, recent.String(), prettyDate, archived.String())
}
