package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/service"
)

type SubscriptionHandler struct {
	service *service.SubscriptionService
}

func NewSubscriptionHandler(service *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// ToggleSubscription godoc
// @Summary      Subscribe to or unsubscribe from a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path      string  true  "Channel ID"
// @Success      200        {object}  common.Response{data=model.SubscriptionToggle}
// @Failure      400        {object}  common.Response
// @Failure      404        {object}  common.Response
// @Router       /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) ToggleSubscription(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	channelID, appErr := pathID(r, "channelId")
	if appErr != nil {
		return appErr
	}

	result, err := h.service.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		return toAppError(err, "Could not toggle subscription")
	}
	msg := "Unsubscribed successfully"
	if result.Subscribed {
		msg = "Subscribed successfully"
	}
	common.JSON(w, http.StatusOK, result, msg)
	return nil
}

// ChannelSubscribers godoc
// @Summary      List a channel's subscribers
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path      string  true  "Channel ID"
// @Success      200        {object}  common.Response{data=[]model.SubscriptionEntry}
// @Failure      404        {object}  common.Response
// @Router       /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) ChannelSubscribers(w http.ResponseWriter, r *http.Request) *common.AppError {
	channelID, appErr := pathID(r, "channelId")
	if appErr != nil {
		return appErr
	}

	subscribers, err := h.service.Subscribers(r.Context(), channelID)
	if err != nil {
		return toAppError(err, "Could not fetch subscribers")
	}
	common.JSON(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
	return nil
}

// SubscribedChannels godoc
// @Summary      List the channels a user subscribed to
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriberId  path      string  true  "Subscriber ID"
// @Success      200           {object}  common.Response{data=[]model.SubscriptionEntry}
// @Failure      404           {object}  common.Response
// @Router       /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) *common.AppError {
	subscriberID, appErr := pathID(r, "subscriberId")
	if appErr != nil {
		return appErr
	}

	channels, err := h.service.SubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		return toAppError(err, "Could not fetch subscribed channels")
	}
	common.JSON(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
	return nil
}
