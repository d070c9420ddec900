package reddit

import "context"

// MockClient is a mock implementation for testing
type MockClient struct {
	HotPostsFunc        func(ctx context.Context, subreddit string) ([]Post, error)
	SubmitSelfPostFunc  func(ctx context.Context, subreddit, title, body string) (string, error)
	EditPostFunc        func(ctx context.Context, postID, body string) error
	StickyPostFunc      func(ctx context.Context, postID string) error
	DistinguishPostFunc func(ctx context.Context, postID string) error
	ApprovePostFunc     func(ctx context.Context, postID string) error

	// Track calls
	HotPostsCalls []struct {
		Subreddit string
	}
	SubmitCalls []struct {
		Subreddit string
		Title     string
		Body      string
	}
	EditCalls []struct {
		PostID string
		Body   string
	}
	StickyCalls      []string
	DistinguishCalls []string
	ApproveCalls     []string
}

// NewMockClient creates a new mock Reddit client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// HotPosts mock implementation
func (m *MockClient) HotPosts(ctx context.Context, subreddit string) ([]Post, error) {
	m.HotPostsCalls = append(m.HotPostsCalls, struct {
		Subreddit string
	}{subreddit})

	if m.HotPostsFunc != nil {
		return m.HotPostsFunc(ctx, subreddit)
	}

	return nil, nil
}

// SubmitSelfPost mock implementation
func (m *MockClient) SubmitSelfPost(ctx context.Context, subreddit, title, body string) (string, error) {
	m.SubmitCalls = append(m.SubmitCalls, struct {
		Subreddit string
		Title     string
		Body      string
	}{subreddit, title, body})

	if m.SubmitSelfPostFunc != nil {
		return m.SubmitSelfPostFunc(ctx, subreddit, title, body)
	}

	return "mock1", nil // Default mock post id
}

// EditPost mock implementation
func (m *MockClient) EditPost(ctx context.Context, postID, body string) error {
	m.EditCalls = append(m.EditCalls, struct {
		PostID string
		Body   string
	}{postID, body})

	if m.EditPostFunc != nil {
		return m.EditPostFunc(ctx, postID, body)
	}

	return nil
}

// StickyPost mock implementation
func (m *MockClient) StickyPost(ctx context.Context, postID string) error {
	m.StickyCalls = append(m.StickyCalls, postID)

	if m.StickyPostFunc != nil {
		return m.StickyPostFunc(ctx, postID)
	}

	return nil
}

// DistinguishPost mock implementation
func (m *MockClient) DistinguishPost(ctx context.Context, postID string) error {
	m.DistinguishCalls = append(m.DistinguishCalls, postID)

	if m.DistinguishPostFunc != nil {
		return m.DistinguishPostFunc(ctx, postID)
	}

	return nil
}

// ApprovePost mock implementation
func (m *MockClient) ApprovePost(ctx context.Context, postID string) error {
	m.ApproveCalls = append(m.ApproveCalls, postID)

	if m.ApprovePostFunc != nil {
		return m.ApprovePostFunc(ctx, postID)
	}

	return nil
}
