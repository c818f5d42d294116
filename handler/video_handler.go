package handler

import (
	"net/http"
	"strconv"
	"strings"

	"vidtube-api/common"
	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type VideoHandler struct {
	service   *service.VideoService
	maxUpload int64
}

func NewVideoHandler(service *service.VideoService, maxUpload int64) *VideoHandler {
	return &VideoHandler{service: service, maxUpload: maxUpload}
}

// ListVideos godoc
// @Summary      List published videos
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        query     query     string  false  "Text matched against title and description"
// @Param        sortBy    query     string  false  "createdAt, views, duration or title"
// @Param        sortType  query     string  false  "asc or desc"
// @Param        userId    query     string  false  "Owner filter"
// @Param        page      query     int     false  "Page, 1-based"
// @Param        limit     query     int     false  "Page size, max 100"
// @Success      200       {object}  common.Response{data=model.Page[model.Video]}
// @Failure      400       {object}  common.Response
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	q := r.URL.Query()
	filter := model.VideoFilter{
		Query:     strings.TrimSpace(q.Get("query")),
		ViewerID:  user.ID,
		SortBy:    q.Get("sortBy"),
		PageQuery: pageQuery(r),
	}
	if filter.SortBy != "" && !repository.IsValidVideoSort(filter.SortBy) {
		return common.BadRequest("invalid sortBy", nil)
	}
	switch strings.ToLower(q.Get("sortType")) {
	case "", "asc":
	case "desc":
		filter.SortDesc = true
	default:
		return common.BadRequest("invalid sortType", nil)
	}
	if owner := q.Get("userId"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			return common.BadRequest("invalid userId", err)
		}
		filter.OwnerID = id.String()
	}

	page, err := h.service.ListVideos(r.Context(), filter)
	if err != nil {
		return toAppError(err, "Could not list videos")
	}
	common.JSON(w, http.StatusOK, page, "Videos fetched successfully")
	return nil
}

// PublishVideo godoc
// @Summary      Upload and publish a video
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        duration     formData  number  false  "Duration in seconds"
// @Param        videoFile    formData  file    true   "Video file"
// @Param        thumbnail    formData  file    true   "Thumbnail image"
// @Success      201          {object}  common.Response{data=model.Video}
// @Failure      400          {object}  common.Response
// @Failure      413          {object}  common.Response
// @Router       /videos [post]
func (h *VideoHandler) PublishVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	if appErr := parseMultipart(w, r, h.maxUpload); appErr != nil {
		return appErr
	}

	req := model.PublishVideoRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return common.BadRequest("invalid duration", err)
		}
		req.Duration = d
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return appErr
	}

	videoFile, closeVideo, appErr := formFile(r, "videoFile")
	if appErr != nil {
		return appErr
	}
	defer closeVideo()
	thumbnail, closeThumb, appErr := formFile(r, "thumbnail")
	if appErr != nil {
		return appErr
	}
	defer closeThumb()

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID, "title": req.Title}).Info("Publish video request received")

	video, err := h.service.Publish(r.Context(), user.ID, req, videoFile, thumbnail)
	if err != nil {
		return toAppError(err, "Could not publish video")
	}
	common.JSON(w, http.StatusCreated, video, "Video published successfully")
	return nil
}

// GetVideo godoc
// @Summary      Get a video and record the view
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true  "Video ID"
// @Success      200      {object}  common.Response{data=model.Video}
// @Failure      404      {object}  common.Response
// @Router       /videos/{videoId} [get]
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}

	video, err := h.service.GetVideo(r.Context(), videoID, user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch video")
	}
	common.JSON(w, http.StatusOK, video, "Video fetched successfully")
	return nil
}

// UpdateVideo godoc
// @Summary      Update title, description or thumbnail
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        videoId      path      string  true   "Video ID"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Param        thumbnail    formData  file    false  "Thumbnail image"
// @Success      200          {object}  common.Response{data=model.Video}
// @Failure      403          {object}  common.Response
// @Failure      404          {object}  common.Response
// @Router       /videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}
	if appErr := parseMultipart(w, r, h.maxUpload); appErr != nil {
		return appErr
	}

	req := model.UpdateVideoRequest{
		Title:       optionalFormValue(r, "title"),
		Description: optionalFormValue(r, "description"),
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return appErr
	}
	thumbnail, closeThumb, appErr := formFile(r, "thumbnail")
	if appErr != nil {
		return appErr
	}
	defer closeThumb()

	video, err := h.service.UpdateVideo(r.Context(), videoID, user.ID, req, thumbnail)
	if err != nil {
		return toAppError(err, "Could not update video")
	}
	common.JSON(w, http.StatusOK, video, "Video updated successfully")
	return nil
}

// DeleteVideo godoc
// @Summary      Delete a video and its assets
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true  "Video ID"
// @Success      200      {object}  common.Response
// @Failure      403      {object}  common.Response
// @Failure      404      {object}  common.Response
// @Router       /videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeleteVideo(r.Context(), videoID, user.ID); err != nil {
		return toAppError(err, "Could not delete video")
	}
	common.JSON(w, http.StatusOK, nil, "Video deleted successfully")
	return nil
}

// TogglePublish godoc
// @Summary      Flip the published flag
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      string  true  "Video ID"
// @Success      200      {object}  common.Response{data=model.Video}
// @Failure      403      {object}  common.Response
// @Router       /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return appErr
	}

	video, err := h.service.TogglePublish(r.Context(), videoID, user.ID)
	if err != nil {
		return toAppError(err, "Could not toggle publish status")
	}
	common.JSON(w, http.StatusOK, video, "Publish status toggled successfully")
	return nil
}
