package service

import (
	"context"
	"errors"
	"testing"

	"echo-server/internal/domain"
)

func newTweetServiceFixture() (*TweetService, *mockUserRepo, *mockTweetRepo, *mockNotificationRepo) {
	userRepo := newMockUserRepo()
	tweetRepo := newMockTweetRepo()
	likeRepo := newMockLikeRepo()
	commentRepo := newMockCommentRepo()
	notificationRepo := newMockNotificationRepo()

	svc := NewTweetService(tweetRepo, userRepo, likeRepo, commentRepo, notificationRepo)
	return svc, userRepo, tweetRepo, notificationRepo
}

func TestTweetService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _ := newTweetServiceFixture()

	author := &domain.User{Username: "author", Email: "a@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, author)

	tweet, err := svc.Create(ctx, author.ID, &domain.CreateTweetRequest{Content: "hello world"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	detail, err := svc.Get(ctx, tweet.ID, author.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if detail.Content != "hello world" {
		t.Errorf("content = %q, want %q", detail.Content, "hello world")
	}
	if detail.Author == nil || detail.Author.ID != author.ID {
		t.Error("detail missing author")
	}
	if detail.LikeCount != 0 || detail.CommentCount != 0 {
		t.Error("fresh tweet has nonzero counters")
	}
}

func TestTweetService_GetMissing(t *testing.T) {
	svc, _, _, _ := newTweetServiceFixture()

	if _, err := svc.Get(context.Background(), 12345, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestTweetService_LikeFlow(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, notificationRepo := newTweetServiceFixture()

	author := &domain.User{Username: "author", Email: "a@x.com", PasswordHash: "h"}
	fan := &domain.User{Username: "fan", Email: "f@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, author)
	userRepo.Create(ctx, fan)

	tweet, _ := svc.Create(ctx, author.ID, &domain.CreateTweetRequest{Content: "like me"})

	if err := svc.Like(ctx, fan.ID, tweet.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	if err := svc.Like(ctx, fan.ID, tweet.ID); !errors.Is(err, ErrAlreadyLiked) {
		t.Errorf("second Like() error = %v, want ErrAlreadyLiked", err)
	}

	notifications, _ := notificationRepo.ListByUser(ctx, author.ID, 10, 0)
	if len(notifications) != 1 {
		t.Fatalf("author has %d notifications, want 1", len(notifications))
	}
	if notifications[0].Type != domain.NotificationLike || notifications[0].SenderID != fan.ID {
		t.Error("like notification has wrong type or sender")
	}

	detail, _ := svc.Get(ctx, tweet.ID, fan.ID)
	if detail.LikeCount != 1 || !detail.LikedByMe {
		t.Errorf("like counters = (%d, %v), want (1, true)", detail.LikeCount, detail.LikedByMe)
	}

	if err := svc.Unlike(ctx, fan.ID, tweet.ID); err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}
	if err := svc.Unlike(ctx, fan.ID, tweet.ID); !errors.Is(err, ErrNotLiked) {
		t.Errorf("second Unlike() error = %v, want ErrNotLiked", err)
	}
}

func TestTweetService_Feed(t *testing.T) {
	ctx := context.Background()
	userRepo := newMockUserRepo()
	tweetRepo := newMockTweetRepo()
	likeRepo := newMockLikeRepo()
	commentRepo := newMockCommentRepo()
	svc := NewTweetService(tweetRepo, userRepo, likeRepo, commentRepo, newMockNotificationRepo())

	alice := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	bob := &domain.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, alice)
	userRepo.Create(ctx, bob)

	t1, _ := svc.Create(ctx, alice.ID, &domain.CreateTweetRequest{Content: "first"})
	t2, _ := svc.Create(ctx, bob.ID, &domain.CreateTweetRequest{Content: "second"})

	if err := svc.Like(ctx, bob.ID, t1.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}
	commentRepo.Create(ctx, &domain.Comment{TweetID: t2.ID, UserID: alice.ID, Content: "reply"})

	details, err := svc.Feed(ctx, bob.ID, 20, 0)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("feed has %d tweets, want 2", len(details))
	}

	byID := make(map[int64]*domain.TweetDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	d1 := byID[t1.ID]
	if d1 == nil || d1.Author == nil || d1.Author.ID != alice.ID {
		t.Fatal("feed entry for first tweet missing its author")
	}
	if d1.LikeCount != 1 || !d1.LikedByMe {
		t.Errorf("first tweet counters = (%d, %v), want (1, true)", d1.LikeCount, d1.LikedByMe)
	}
	if d1.CommentCount != 0 {
		t.Errorf("first tweet comment count = %d, want 0", d1.CommentCount)
	}

	d2 := byID[t2.ID]
	if d2 == nil || d2.Author == nil || d2.Author.ID != bob.ID {
		t.Fatal("feed entry for second tweet missing its author")
	}
	if d2.LikeCount != 0 || d2.LikedByMe {
		t.Errorf("second tweet like state = (%d, %v), want (0, false)", d2.LikeCount, d2.LikedByMe)
	}
	if d2.CommentCount != 1 {
		t.Errorf("second tweet comment count = %d, want 1", d2.CommentCount)
	}
}

func TestTweetService_FeedEmpty(t *testing.T) {
	svc, _, _, _ := newTweetServiceFixture()

	details, err := svc.Feed(context.Background(), 0, 20, 0)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(details) != 0 {
		t.Errorf("empty feed has %d entries, want 0", len(details))
	}
}

func TestTweetService_LikeOwnTweetNoNotification(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, notificationRepo := newTweetServiceFixture()

	author := &domain.User{Username: "author", Email: "a@x.com", PasswordHash: "h"}
	userRepo.Create(ctx, author)

	tweet, _ := svc.Create(ctx, author.ID, &domain.CreateTweetRequest{Content: "self like"})

	if err := svc.Like(ctx, author.ID, tweet.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	notifications, _ := notificationRepo.ListByUser(ctx, author.ID, 10, 0)
	if len(notifications) != 0 {
		t.Errorf("self-like produced %d notifications, want 0", len(notifications))
	}
}

func TestTweetService_DeleteAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tweetRepo, _ := newTweetServiceFixture()

	author := &domain.User{Username: "author", Email: "a@x.com", PasswordHash: "h"}
	stranger := &domain.User{Username: "stranger", Email: "s@x.com", PasswordHash: "h"}
	admin := &domain.User{Username: "admin", Email: "adm@x.com", PasswordHash: "h", IsAdmin: true}
	userRepo.Create(ctx, author)
	userRepo.Create(ctx, stranger)
	userRepo.Create(ctx, admin)

	tweet, _ := svc.Create(ctx, author.ID, &domain.CreateTweetRequest{Content: "mine"})

	if err := svc.Delete(ctx, tweet.ID, stranger.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete() by stranger error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(ctx, tweet.ID, author.ID); err != nil {
		t.Errorf("Delete() by author error = %v", err)
	}

	tweet2, _ := svc.Create(ctx, author.ID, &domain.CreateTweetRequest{Content: "mine too"})
	if err := svc.Delete(ctx, tweet2.ID, admin.ID); err != nil {
		t.Errorf("Delete() by admin error = %v", err)
	}

	if len(tweetRepo.tweets) != 0 {
		t.Errorf("%d tweets remain, want 0", len(tweetRepo.tweets))
	}
}
