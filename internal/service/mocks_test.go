package service

import (
	"context"
	"time"

	"echo-server/internal/domain"
	"echo-server/internal/repository"
)

type mockUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	users := make(map[int64]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			users[id] = u
		}
	}
	return users, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

type mockTweetRepo struct {
	tweets map[int64]*domain.Tweet
	nextID int64
}

func newMockTweetRepo() *mockTweetRepo {
	return &mockTweetRepo{tweets: make(map[int64]*domain.Tweet), nextID: 1}
}

func (m *mockTweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	tweet.ID = m.nextID
	m.nextID++
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = tweet.CreatedAt
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *mockTweetRepo) FindByID(ctx context.Context, id int64) (*domain.Tweet, error) {
	if t, ok := m.tweets[id]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockTweetRepo) List(ctx context.Context, limit, offset int) ([]*domain.Tweet, error) {
	tweets := []*domain.Tweet{}
	for _, t := range m.tweets {
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func (m *mockTweetRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Tweet, error) {
	tweets := []*domain.Tweet{}
	for _, t := range m.tweets {
		if t.UserID == userID {
			tweets = append(tweets, t)
		}
	}
	return tweets, nil
}

func (m *mockTweetRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tweets, id)
	return nil
}

type likeKey struct {
	userID  int64
	tweetID int64
}

type mockLikeRepo struct {
	likes map[likeKey]bool
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{likes: make(map[likeKey]bool)}
}

func (m *mockLikeRepo) Create(ctx context.Context, like *domain.Like) error {
	key := likeKey{like.UserID, like.TweetID}
	if m.likes[key] {
		return repository.ErrDuplicate
	}
	m.likes[key] = true
	return nil
}

func (m *mockLikeRepo) Delete(ctx context.Context, userID, tweetID int64) error {
	key := likeKey{userID, tweetID}
	if !m.likes[key] {
		return repository.ErrNotFound
	}
	delete(m.likes, key)
	return nil
}

func (m *mockLikeRepo) Exists(ctx context.Context, userID, tweetID int64) (bool, error) {
	return m.likes[likeKey{userID, tweetID}], nil
}

func (m *mockLikeRepo) ExistsForTweets(ctx context.Context, userID int64, tweetIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(tweetIDs))
	for _, tweetID := range tweetIDs {
		if m.likes[likeKey{userID, tweetID}] {
			liked[tweetID] = true
		}
	}
	return liked, nil
}

func (m *mockLikeRepo) CountByTweet(ctx context.Context, tweetID int64) (int64, error) {
	var count int64
	for key := range m.likes {
		if key.tweetID == tweetID {
			count++
		}
	}
	return count, nil
}

func (m *mockLikeRepo) CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(tweetIDs))
	for _, tweetID := range tweetIDs {
		if n, _ := m.CountByTweet(ctx, tweetID); n > 0 {
			counts[tweetID] = n
		}
	}
	return counts, nil
}

type mockCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*domain.Comment), nextID: 1}
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	comment.CreatedAt = time.Now()
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockCommentRepo) ListByTweet(ctx context.Context, tweetID int64, limit, offset int) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	for _, c := range m.comments {
		if c.TweetID == tweetID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (m *mockCommentRepo) CountByTweet(ctx context.Context, tweetID int64) (int64, error) {
	comments, _ := m.ListByTweet(ctx, tweetID, 0, 0)
	return int64(len(comments)), nil
}

func (m *mockCommentRepo) CountByTweetIDs(ctx context.Context, tweetIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(tweetIDs))
	for _, tweetID := range tweetIDs {
		if n, _ := m.CountByTweet(ctx, tweetID); n > 0 {
			counts[tweetID] = n
		}
	}
	return counts, nil
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type followKey struct {
	followerID int64
	followedID int64
}

type mockFollowRepo struct {
	follows map[followKey]bool
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{follows: make(map[followKey]bool)}
}

func (m *mockFollowRepo) Follow(ctx context.Context, followerID, followedID int64) error {
	key := followKey{followerID, followedID}
	if m.follows[key] {
		return repository.ErrDuplicate
	}
	m.follows[key] = true
	return nil
}

func (m *mockFollowRepo) Unfollow(ctx context.Context, followerID, followedID int64) error {
	key := followKey{followerID, followedID}
	if !m.follows[key] {
		return repository.ErrNotFound
	}
	delete(m.follows, key)
	return nil
}

func (m *mockFollowRepo) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return m.follows[followKey{followerID, followedID}], nil
}

func (m *mockFollowRepo) Followers(ctx context.Context, userID int64, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (m *mockFollowRepo) Following(ctx context.Context, userID int64, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (m *mockFollowRepo) FollowerCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for key := range m.follows {
		if key.followedID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowRepo) FollowingCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for key := range m.follows {
		if key.followerID == userID {
			count++
		}
	}
	return count, nil
}

type mockNotificationRepo struct {
	notifications map[int64]*domain.Notification
	nextID        int64
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[int64]*domain.Notification), nextID: 1}
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Notification, error) {
	notifications := []*domain.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
