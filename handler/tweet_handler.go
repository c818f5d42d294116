package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/service"
)

type TweetHandler struct {
	service *service.TweetService
}

func NewTweetHandler(service *service.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      model.ContentRequest  true  "Tweet"
// @Success      201   {object}  common.Response{data=model.Tweet}
// @Failure      400   {object}  common.Response
// @Router       /tweets [post]
func (h *TweetHandler) CreateTweet(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	var req model.ContentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	tweet, err := h.service.CreateTweet(r.Context(), user, req.Content)
	if err != nil {
		return toAppError(err, "Could not create tweet")
	}
	common.JSON(w, http.StatusCreated, tweet, "Tweet created successfully")
	return nil
}

// UserTweets godoc
// @Summary      List a user's tweets, newest first
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  common.Response{data=[]model.Tweet}
// @Failure      404     {object}  common.Response
// @Router       /tweets/user/{userId} [get]
func (h *TweetHandler) UserTweets(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := pathID(r, "userId")
	if appErr != nil {
		return appErr
	}

	tweets, err := h.service.UserTweets(r.Context(), userID)
	if err != nil {
		return toAppError(err, "Could not fetch tweets")
	}
	common.JSON(w, http.StatusOK, tweets, "Tweets fetched successfully")
	return nil
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      string                true  "Tweet ID"
// @Param        body     body      model.ContentRequest  true  "New content"
// @Success      200      {object}  common.Response{data=model.Tweet}
// @Failure      403      {object}  common.Response
// @Router       /tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	tweetID, appErr := pathID(r, "tweetId")
	if appErr != nil {
		return appErr
	}
	var req model.ContentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	tweet, err := h.service.UpdateTweet(r.Context(), tweetID, user.ID, req.Content)
	if err != nil {
		return toAppError(err, "Could not update tweet")
	}
	common.JSON(w, http.StatusOK, tweet, "Tweet updated successfully")
	return nil
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      string  true  "Tweet ID"
// @Success      200      {object}  common.Response
// @Failure      403      {object}  common.Response
// @Router       /tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	tweetID, appErr := pathID(r, "tweetId")
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteTweet(r.Context(), tweetID, user.ID); err != nil {
		return toAppError(err, "Could not delete tweet")
	}
	common.JSON(w, http.StatusOK, nil, "Tweet deleted successfully")
	return nil
}
