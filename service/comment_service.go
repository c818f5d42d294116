package service

import (
	"context"
	"errors"
	"strings"

	"vidtube-api/model"
	"vidtube-api/repository"
)

type CommentService struct {
	comments repository.ICommentRepository
	videos   repository.IVideoRepository
}

func NewCommentService(comments repository.ICommentRepository, videos repository.IVideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

// ListComments pages through a visible video's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, videoID, viewerID string, page model.PageQuery) (*model.Page[*model.Comment], error) {
	if _, err := findVisibleVideo(ctx, s.videos, videoID, viewerID); err != nil {
		return nil, err
	}
	page = page.Normalize()
	comments, total, err := s.comments.ListByVideo(ctx, videoID, page)
	if err != nil {
		return nil, err
	}
	return model.NewPage(comments, page, total), nil
}

func (s *CommentService) AddComment(ctx context.Context, videoID string, author *model.User, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := findVisibleVideo(ctx, s.videos, videoID, author.ID); err != nil {
		return nil, err
	}

	summary := author.Summary()
	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: author.ID,
		Owner:   &summary,
		Content: content,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, mapVideoErr(err)
	}
	return comment, nil
}

// UpdateComment reports false when the content is unchanged and nothing was written.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, callerID, content string) (*model.Comment, bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false, ErrEmptyContent
	}
	comment, err := s.ownedComment(ctx, commentID, callerID)
	if err != nil {
		return nil, false, err
	}
	if comment.Content == content {
		return comment, false, nil
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, false, mapCommentErr(err)
	}
	return updated, true, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID string) error {
	if _, err := s.ownedComment(ctx, commentID, callerID); err != nil {
		return err
	}
	return mapCommentErr(s.comments.DeleteComment(ctx, commentID))
}

func (s *CommentService) ownedComment(ctx context.Context, commentID, callerID string) (*model.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, mapCommentErr(err)
	}
	if comment.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func mapCommentErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCommentNotFound
	}
	return err
}
