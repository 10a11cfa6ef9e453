package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type FeedUsecase struct {
	repo repository.PostRepository
}

func NewFeedUsecase(repo repository.PostRepository) *FeedUsecase {
	return &FeedUsecase{repo: repo}
}

type CreatePostInput struct {
	Title     string
	Body      string
	ImageURL  string
	Published bool
}

func (u *FeedUsecase) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	created, err := u.repo.Create(ctx, &domain.Post{
		Title:     input.Title,
		Body:      input.Body,
		ImageURL:  input.ImageURL,
		Published: input.Published,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

func (u *FeedUsecase) DeletePost(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

type ListFeedResult struct {
	Posts      []*domain.Post
	NextCursor *string
}

func (u *FeedUsecase) ListFeed(ctx context.Context, cursor string, limit int) (*ListFeedResult, error) {
	limit = clampLimit(limit)

	input := repository.ListInput{Limit: limit + 1}
	if cursor != "" {
		t, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("bad cursor: %w", err)
		}
		input.CursorTime = t
		input.CursorID = id
	}

	posts, err := u.repo.ListPublished(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	result := &ListFeedResult{Posts: posts}
	if len(posts) > limit {
		result.Posts = posts[:limit]
		last := result.Posts[limit-1]
		c := encodeCursor(last.CreatedAt, last.ID)
		result.NextCursor = &c
	}
	return result, nil
}
