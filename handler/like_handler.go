package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/service"
)

type LikeHandler struct {
	service *service.LikeService
}

func NewLikeHandler(service *service.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// ToggleVideoLike godoc
// @Summary      Like or unlike a video
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true  "Video ID"
// @Success      200      {object}  common.Response{data=model.LikeToggle}
// @Failure      404      {object}  common.Response
// @Router       /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.toggle(w, r, model.LikeVideo, "videoId")
}

// ToggleCommentLike godoc
// @Summary      Like or unlike a comment
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  common.Response{data=model.LikeToggle}
// @Failure      404        {object}  common.Response
// @Router       /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.toggle(w, r, model.LikeComment, "commentId")
}

// ToggleTweetLike godoc
// @Summary      Like or unlike a tweet
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  common.Response{data=model.LikeToggle}
// @Failure      404      {object}  common.Response
// @Router       /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.toggle(w, r, model.LikeTweet, "tweetId")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target model.LikeTarget, param string) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	targetID, appErr := pathID(r, param)
	if appErr != nil {
		return appErr
	}

	result, err := h.service.Toggle(r.Context(), target, targetID, user.ID)
	if err != nil {
		return toAppError(err, "Could not toggle like")
	}
	msg := "Like removed"
	if result.Liked {
		msg = "Like added"
	}
	common.JSON(w, http.StatusOK, result, msg)
	return nil
}

// LikedVideos godoc
// @Summary      List videos the current user liked
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=[]model.Video}
// @Router       /likes/videos [get]
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	videos, err := h.service.LikedVideos(r.Context(), user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch liked videos")
	}
	common.JSON(w, http.StatusOK, videos, "Liked videos fetched successfully")
	return nil
}
