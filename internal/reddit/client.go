package reddit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
)

// hotListingLimit is the page size for the sticky scan. Stickied posts sit
// at the top of the hot listing, so one page is always enough.
const hotListingLimit = 100

// Client is the surface of the Reddit API the bot needs. The engine and
// locator depend on this interface so tests can swap in a mock.
type Client interface {
	// HotPosts lists the subreddit's hot submissions.
	HotPosts(ctx context.Context, subreddit string) ([]Post, error)

	// SubmitSelfPost creates a self-text post and returns its id.
	SubmitSelfPost(ctx context.Context, subreddit, title, body string) (string, error)

	// EditPost replaces the body of an existing post.
	EditPost(ctx context.Context, postID, body string) error

	// StickyPost pins a post to the top of its subreddit.
	StickyPost(ctx context.Context, postID string) error

	// DistinguishPost marks a post as an official moderator post.
	DistinguishPost(ctx context.Context, postID string) error

	// ApprovePost approves a post, bypassing the moderation queue.
	ApprovePost(ctx context.Context, postID string) error
}

// Post is the slice of a submission the bot reads back from listings.
type Post struct {
	ID       string
	Title    string
	Author   string
	Body     string
	Stickied bool
}

// Credentials holds the script-app credentials for the bot account.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// HTTPClient is the production Client. It wraps go-reddit's script-app
// client, which handles the OAuth2 password grant and token caching. It
// performs no retries; the scheduler's next tick is the retry.
type HTTPClient struct {
	api    *goreddit.Client
	logger *logrus.Logger
}

// NewHTTPClient creates a Reddit client for the given script-app credentials.
func NewHTTPClient(creds Credentials, logger *logrus.Logger) (*HTTPClient, error) {
	return newHTTPClient(creds, logger)
}

// newHTTPClient lets tests point the underlying client at a fake server via
// goreddit.WithBaseURL and goreddit.WithTokenURL.
func newHTTPClient(creds Credentials, logger *logrus.Logger, opts ...goreddit.Opt) (*HTTPClient, error) {
	opts = append(opts, goreddit.WithUserAgent(creds.UserAgent))
	api, err := goreddit.NewClient(goreddit.Credentials{
		ID:       creds.ClientID,
		Secret:   creds.ClientSecret,
		Username: creds.Username,
		Password: creds.Password,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit client: %w", err)
	}
	return &HTTPClient{api: api, logger: logger}, nil
}

// HotPosts lists the subreddit's hot submissions.
func (c *HTTPClient) HotPosts(ctx context.Context, subreddit string) ([]Post, error) {
	listing, _, err := c.api.Subreddit.HotPosts(ctx, subreddit, &goreddit.ListOptions{Limit: hotListingLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hot listing: %w", err)
	}

	posts := make([]Post, 0, len(listing))
	for _, p := range listing {
		posts = append(posts, Post{
			ID:       p.ID,
			Title:    p.Title,
			Author:   p.Author,
			Body:     p.Body,
			Stickied: p.Stickied,
		})
	}
	c.logger.WithField("posts", len(posts)).Debug("Fetched hot listing")

	return posts, nil
}

// SubmitSelfPost creates a self-text post and returns its id.
func (c *HTTPClient) SubmitSelfPost(ctx context.Context, subreddit, title, body string) (string, error) {
	submitted, _, err := c.api.Post.SubmitText(ctx, goreddit.SubmitTextRequest{
		Subreddit: subreddit,
		Title:     title,
		Text:      body,
	})
	if err != nil {
		return "", fmt.Errorf("submit failed: %w", err)
	}
	if submitted == nil || submitted.ID == "" {
		return "", fmt.Errorf("submit response missing post id")
	}

	return submitted.ID, nil
}

// EditPost replaces the body of an existing post.
func (c *HTTPClient) EditPost(ctx context.Context, postID, body string) error {
	if _, _, err := c.api.Post.Edit(ctx, fullname(postID), body); err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}
	return nil
}

// StickyPost pins a post to the top of its subreddit.
func (c *HTTPClient) StickyPost(ctx context.Context, postID string) error {
	if _, err := c.api.Post.Sticky(ctx, fullname(postID), false); err != nil {
		return fmt.Errorf("sticky failed: %w", err)
	}
	return nil
}

// DistinguishPost marks a post as an official moderator post.
func (c *HTTPClient) DistinguishPost(ctx context.Context, postID string) error {
	if _, err := c.api.Moderation.Distinguish(ctx, fullname(postID)); err != nil {
		return fmt.Errorf("distinguish failed: %w", err)
	}
	return nil
}

// ApprovePost approves a post, bypassing the moderation queue.
func (c *HTTPClient) ApprovePost(ctx context.Context, postID string) error {
	if _, err := c.api.Moderation.Approve(ctx, fullname(postID)); err != nil {
		return fmt.Errorf("approve failed: %w", err)
	}
	return nil
}

// fullname converts a bare post id to the t3_ thing id the write endpoints
// expect.
func fullname(postID string) string {
	return "t3_" + postID
}
