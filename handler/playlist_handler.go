package handler

import (
	"net/http"

	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/service"
)

type PlaylistHandler struct {
	service *service.PlaylistService
}

func NewPlaylistHandler(service *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      model.PlaylistRequest  true  "Playlist"
// @Success      201   {object}  common.Response{data=model.Playlist}
// @Failure      400   {object}  common.Response
// @Router       /playlists [post]
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	var req model.PlaylistRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), user, req)
	if err != nil {
		return toAppError(err, "Could not create playlist")
	}
	common.JSON(w, http.StatusCreated, playlist, "Playlist created successfully")
	return nil
}

// UserPlaylists godoc
// @Summary      List a user's playlists
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  common.Response{data=[]model.Playlist}
// @Failure      404     {object}  common.Response
// @Router       /playlists/user/{userId} [get]
func (h *PlaylistHandler) UserPlaylists(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, appErr := pathID(r, "userId")
	if appErr != nil {
		return appErr
	}

	playlists, err := h.service.UserPlaylists(r.Context(), userID)
	if err != nil {
		return toAppError(err, "Could not fetch playlists")
	}
	common.JSON(w, http.StatusOK, playlists, "Playlists fetched successfully")
	return nil
}

// GetPlaylist godoc
// @Summary      Get a playlist with its videos
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      string  true  "Playlist ID"
// @Success      200         {object}  common.Response{data=model.Playlist}
// @Failure      404         {object}  common.Response
// @Router       /playlists/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	playlistID, appErr := pathID(r, "playlistId")
	if appErr != nil {
		return appErr
	}

	playlist, err := h.service.GetPlaylist(r.Context(), playlistID, user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch playlist")
	}
	common.JSON(w, http.StatusOK, playlist, "Playlist fetched successfully")
	return nil
}

// UpdatePlaylist godoc
// @Summary      Rename or redescribe a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      string                 true  "Playlist ID"
// @Param        body        body      model.UpdatePlaylistRequest  true  "Playlist"
// @Success      200         {object}  common.Response{data=model.Playlist}
// @Failure      403         {object}  common.Response
// @Router       /playlists/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	playlistID, appErr := pathID(r, "playlistId")
	if appErr != nil {
		return appErr
	}
	var req model.UpdatePlaylistRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	playlist, err := h.service.UpdatePlaylist(r.Context(), playlistID, user.ID, req)
	if err != nil {
		return toAppError(err, "Could not update playlist")
	}
	common.JSON(w, http.StatusOK, playlist, "Playlist updated successfully")
	return nil
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      string  true  "Playlist ID"
// @Success      200         {object}  common.Response
// @Failure      403         {object}  common.Response
// @Router       /playlists/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	playlistID, appErr := pathID(r, "playlistId")
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeletePlaylist(r.Context(), playlistID, user.ID); err != nil {
		return toAppError(err, "Could not delete playlist")
	}
	common.JSON(w, http.StatusOK, nil, "Playlist deleted successfully")
	return nil
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId     path      string  true  "Video ID"
// @Param        playlistId  path      string  true  "Playlist ID"
// @Success      200         {object}  common.Response{data=model.Playlist}
// @Failure      409         {object}  common.Response
// @Router       /playlists/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, playlistID, videoID, appErr := playlistVideoParams(r)
	if appErr != nil {
		return appErr
	}

	playlist, err := h.service.AddVideo(r.Context(), playlistID, videoID, user.ID)
	if err != nil {
		return toAppError(err, "Could not add video to playlist")
	}
	common.JSON(w, http.StatusOK, playlist, "Video added to playlist")
	return nil
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId     path      string  true  "Video ID"
// @Param        playlistId  path      string  true  "Playlist ID"
// @Success      200         {object}  common.Response{data=model.Playlist}
// @Failure      404         {object}  common.Response
// @Router       /playlists/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, playlistID, videoID, appErr := playlistVideoParams(r)
	if appErr != nil {
		return appErr
	}

	playlist, err := h.service.RemoveVideo(r.Context(), playlistID, videoID, user.ID)
	if err != nil {
		return toAppError(err, "Could not remove video from playlist")
	}
	common.JSON(w, http.StatusOK, playlist, "Video removed from playlist")
	return nil
}

func playlistVideoParams(r *http.Request) (*model.User, string, string, *common.AppError) {
	user, appErr := requireUser(r)
	if appErr != nil {
		return nil, "", "", appErr
	}
	videoID, appErr := pathID(r, "videoId")
	if appErr != nil {
		return nil, "", "", appErr
	}
	playlistID, appErr := pathID(r, "playlistId")
	if appErr != nil {
		return nil, "", "", appErr
	}
	return user, playlistID, videoID, nil
}
