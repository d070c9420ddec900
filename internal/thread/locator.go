package thread

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cexll/threadbot/internal/reddit"
)

// Locator finds the bot's own thread for the current day among the
// subreddit's stickied submissions. It is the sole recovery path after a
// restart: instead of persisted state, identity is re-derived from Reddit.
type Locator struct {
	client    reddit.Client
	subreddit string
	botUser   string
	logger    *logrus.Logger
}

// NewLocator creates a locator scanning the given subreddit for posts
// authored by botUser.
func NewLocator(client reddit.Client, subreddit, botUser string, logger *logrus.Logger) *Locator {
	return &Locator{
		client:    client,
		subreddit: subreddit,
		botUser:   botUser,
		logger:    logger,
	}
}

// Locate returns today's thread if one exists, adopting its identity into
// state. A nil post with nil error means there is no thread yet. Author
// matching is case-insensitive; title matching is exact. With multiple
// matches the first in listing order wins: the bot never creates two
// threads for one day, so duplicates are an external anomaly.
func (l *Locator) Locate(ctx context.Context, state *State, prettyDate, title string) (*reddit.Post, error) {
	// A leftover association from a previous day is abandoned, never
	// recovered: each new day starts with a fresh search.
	if state.ActiveDate != "" && state.ActiveDate != prettyDate {
		return nil, nil
	}

	posts, err := l.client.HotPosts(ctx, l.subreddit)
	if err != nil {
		return nil, fmt.Errorf("failed to list hot submissions: %w", err)
	}

	for _, p := range posts {
		if !p.Stickied {
			continue
		}
		if p.Title != title {
			continue
		}
		if !strings.EqualFold(p.Author, l.botUser) {
			continue
		}

		state.adopt(prettyDate, p.ID)
		l.logger.WithFields(logrus.Fields{
			"post_id": p.ID,
			"date":    prettyDate,
		}).Info("Recovered existing daily thread")

		found := p
		return &found, nil
	}

	return nil, nil
}
