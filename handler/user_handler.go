package handler

import (
	"context"
	"net/http"
	"strings"

	"vidtube-api/common"
	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/service"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	auth      *service.AuthService
	users     *service.UserService
	cookies   *SessionCookies
	metrics   *Metrics
	maxUpload int64
}

func NewUserHandler(auth *service.AuthService, users *service.UserService, cookies *SessionCookies, metrics *Metrics, maxUpload int64) *UserHandler {
	return &UserHandler{auth: auth, users: users, cookies: cookies, metrics: metrics, maxUpload: maxUpload}
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username    formData  string  true   "Handle"
// @Param        email       formData  string  true   "Email"
// @Param        fullName    formData  string  true   "Display name"
// @Param        password    formData  string  true   "Password"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  common.Response{data=model.User}
// @Failure      400  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	if appErr := parseMultipart(w, r, h.maxUpload); appErr != nil {
		return appErr
	}

	req := model.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}
	if appErr := common.ValidateStruct(&req); appErr != nil {
		return appErr
	}

	avatar, closeAvatar, appErr := formFile(r, "avatar")
	if appErr != nil {
		return appErr
	}
	defer closeAvatar()
	if avatar == nil {
		return common.BadRequest(service.ErrAvatarRequired.Error(), nil)
	}
	cover, closeCover, appErr := formFile(r, "coverImage")
	if appErr != nil {
		return appErr
	}
	defer closeCover()

	logger.Log.WithFields(logrus.Fields{"username": req.Username, "email": req.Email}).Info("Register request received")

	user, err := h.auth.Register(r.Context(), req, avatar, cover)
	if err != nil {
		return toAppError(err, "Something went wrong while registering the user")
	}

	h.metrics.AuthEvent(EventRegister)
	common.JSON(w, http.StatusCreated, user, "User registered successfully")
	return nil
}

// Login godoc
// @Summary      Log in with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      model.LoginRequest  true  "Credentials"
// @Success      200   {object}  common.Response{data=model.Session}
// @Failure      400   {object}  common.Response
// @Failure      401   {object}  common.Response
// @Router       /users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})
	log.Info("Login request received")

	session, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.metrics.AuthEvent(EventLoginFailed)
		log.WithError(err).Warn("Login failed")
		return toAppError(err, "Could not log in")
	}

	h.metrics.AuthEvent(EventLogin)
	h.cookies.Set(w, session)
	common.JSON(w, http.StatusOK, session, "User logged in successfully")
	return nil
}

// RefreshToken godoc
// @Summary      Rotate the session tokens
// @Description  Reads the refresh token from the refreshToken cookie or the JSON body.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      model.RefreshRequest  false  "Refresh token"
// @Success      200   {object}  common.Response{data=model.Session}
// @Failure      401   {object}  common.Response
// @Router       /users/refresh-token [post]
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	token := ""
	if c, err := r.Cookie(RefreshCookie); err == nil {
		token = c.Value
	}
	if token == "" && r.Body != nil && r.ContentLength != 0 {
		var req model.RefreshRequest
		if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
			return appErr
		}
		token = req.RefreshToken
	}

	session, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		h.metrics.AuthEvent(EventRefreshFailed)
		return toAppError(err, "Could not refresh the session")
	}

	h.metrics.AuthEvent(EventRefresh)
	h.cookies.Set(w, session)
	common.JSON(w, http.StatusOK, session, "Access token refreshed")
	return nil
}

// Logout godoc
// @Summary      Log out and invalidate the refresh token
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response
// @Failure      401  {object}  common.Response
// @Router       /users/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	if err := h.auth.Logout(r.Context(), user.ID); err != nil {
		return toAppError(err, "Could not log out")
	}

	h.metrics.AuthEvent(EventLogout)
	h.cookies.Clear(w)
	common.JSON(w, http.StatusOK, nil, "User logged out")
	return nil
}

// ChangePassword godoc
// @Summary      Change the current user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      model.ChangePasswordRequest  true  "Old and new password"
// @Success      200   {object}  common.Response
// @Failure      400   {object}  common.Response
// @Router       /users/change-password [post]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	var req model.ChangePasswordRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	if err := h.auth.ChangePassword(r.Context(), user.ID, req); err != nil {
		return toAppError(err, "Could not change password")
	}

	common.JSON(w, http.StatusOK, nil, "Password changed successfully")
	return nil
}

// CurrentUser godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=model.User}
// @Router       /users/current-user [get]
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	common.JSON(w, http.StatusOK, user, "Current user fetched successfully")
	return nil
}

// UpdateAccountDetails godoc
// @Summary      Update full name and email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      model.UpdateAccountRequest  true  "Account details"
// @Success      200   {object}  common.Response{data=model.User}
// @Failure      409   {object}  common.Response
// @Router       /users/update-account-details [patch]
func (h *UserHandler) UpdateAccountDetails(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	var req model.UpdateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	updated, err := h.users.UpdateAccountDetails(r.Context(), user.ID, req)
	if err != nil {
		return toAppError(err, "Could not update account details")
	}
	common.JSON(w, http.StatusOK, updated, "Account details updated successfully")
	return nil
}

// UpdateAvatar godoc
// @Summary      Replace the avatar image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  common.Response{data=model.User}
// @Router       /users/update-avatar [patch]
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.updateImage(w, r, "avatar", h.users.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCoverImage godoc
// @Summary      Replace the cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage  formData  file  true  "Cover image"
// @Success      200         {object}  common.Response{data=model.User}
// @Router       /users/update-cover-image [patch]
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.updateImage(w, r, "coverImage", h.users.UpdateCoverImage, "Cover image updated successfully")
}

type imageUpdater func(ctx context.Context, current *model.User, file *service.Upload) (*model.User, error)

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdater, msg string) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	if appErr := parseMultipart(w, r, h.maxUpload); appErr != nil {
		return appErr
	}
	file, closeFile, appErr := formFile(r, field)
	if appErr != nil {
		return appErr
	}
	defer closeFile()
	if file == nil {
		return common.BadRequest(field+" file is missing", nil)
	}

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID, "field": field}).Info("Image update request received")

	updated, err := update(r.Context(), user, file)
	if err != nil {
		return toAppError(err, "Could not update "+field)
	}
	common.JSON(w, http.StatusOK, updated, msg)
	return nil
}

// GetChannelProfile godoc
// @Summary      Get a channel profile by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Channel username"
// @Success      200       {object}  common.Response{data=model.ChannelProfile}
// @Failure      404       {object}  common.Response
// @Router       /users/channel/{username} [get]
func (h *UserHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		return common.BadRequest("username is missing", nil)
	}

	profile, err := h.users.GetChannelProfile(r.Context(), username, user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch channel profile")
	}
	common.JSON(w, http.StatusOK, profile, "User channel fetched successfully")
	return nil
}

// WatchHistory godoc
// @Summary      List the videos the current user watched
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=[]model.Video}
// @Router       /users/watch-history [get]
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := requireUser(r)
	if appErr != nil {
		return appErr
	}

	videos, err := h.users.WatchHistory(r.Context(), user.ID)
	if err != nil {
		return toAppError(err, "Could not fetch watch history")
	}
	common.JSON(w, http.StatusOK, videos, "Watch history fetched successfully")
	return nil
}
