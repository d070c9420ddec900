package thread

import "github.com/cexll/threadbot/internal/feed"

// State is the only data that survives from one tick to the next. It tracks
// at most one post: ActivePostID is set exactly when ActiveDate is set.
// There is no persistence; after a restart the locator rebuilds identity
// from the subreddit's stickied listing.
type State struct {
	// ActiveDate is the pretty-formatted day being tracked, e.g.
	// "January 5, 2025", or empty when no post is tracked.
	ActiveDate string

	// ActivePostID is the id of the tracked post, or empty.
	ActivePostID string

	// LastKnown is the snapshot last written into the tracked post.
	LastKnown feed.Snapshot
}

// Title builds the day's post title. It doubles as the idempotency key the
// locator scans for after a restart, so the format must stay stable.
func Title(prettyDate string) string {
	return prettyDate + " Protest Stream Discussion"
}

// adopt records a post as the tracked one for date.
func (s *State) adopt(date, postID string) {
	s.ActiveDate = date
	s.ActivePostID = postID
}
