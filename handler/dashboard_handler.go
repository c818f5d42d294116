package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// ChannelStats godoc
// @Summary      Totals for the current user's channel
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=model.ChannelStats}
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	stats, err := h.service.ChannelStats(r.Context(), user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch channel stats")
	}
	common.JSON(w, http.StatusOK, stats, "Channel stats fetched successfully")
	return nil
}

// ChannelVideos godoc
// @Summary      All videos of the current user's channel, unpublished included
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=[]model.Video}
// @Router       /dashboard/videos [get]
func (h *DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	videos, err := h.service.ChannelVideos(r.Context(), user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch channel videos")
	}
	common.JSON(w, http.StatusOK, videos, "Channel videos fetched successfully")
	return nil
}
