package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/service"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListComments godoc
// @Summary      List comments on a video, newest first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true   "Video ID"
// @Param        page     query     int     false  "Page, 1-based"
// @Param        limit    query     int     false  "Page size, max 100"
// @Success      200      {object}  common.Response{data=model.Page[model.Comment]}
// @Failure      404      {object}  common.Response
// @Router       /comments/{videoId} [get]
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}

	page, err := h.service.ListComments(r.Context(), videoID, user.ID, pageQuery(r))
	if err != nil {
		return toAppError(err, "Could not list comments")
	}
	common.JSON(w, http.StatusOK, page, "Comments fetched successfully")
	return nil
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string                true  "Video ID"
// @Param        body     body      model.ContentRequest  true  "Comment"
// @Success      201      {object}  common.Response{data=model.Comment}
// @Failure      404      {object}  common.Response
// @Router       /comments/{videoId} [post]
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}
	var req model.ContentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	comment, err := h.service.AddComment(r.Context(), videoID, user, req.Content)
	if err != nil {
		return toAppError(err, "Could not add comment")
	}
	common.JSON(w, http.StatusCreated, comment, "Comment added successfully")
	return nil
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string                true  "Comment ID"
// @Param        body       body      model.ContentRequest  true  "New content"
// @Success      200        {object}  common.Response{data=model.Comment}
// @Failure      403        {object}  common.Response
// @Router       /comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	commentID, appErr := pathID(r, "commentId")
	if appErr != nil {
		return appErr
	}
	var req model.ContentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	comment, changed, err := h.service.UpdateComment(r.Context(), commentID, user.ID, req.Content)
	if err != nil {
		return toAppError(err, "Could not update comment")
	}
	msg := "Comment updated successfully"
	if !changed {
		msg = "comment not changed"
	}
	common.JSON(w, http.StatusOK, comment, msg)
	return nil
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  common.Response
// @Failure      403        {object}  common.Response
// @Router       /comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	commentID, appErr := pathID(r, "commentId")
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteComment(r.Context(), commentID, user.ID); err != nil {
		return toAppError(err, "Could not delete comment")
	}
	common.JSON(w, http.StatusOK, nil, "Comment deleted successfully")
	return nil
}
