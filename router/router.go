package router

import (
	"net/http"

	"vidtube-api/common"
	_ "vidtube-api/docs"
	"vidtube-api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Handlers is everything the router mounts. Metrics and AuthLimiter are optional.
type Handlers struct {
	Auth        handler.Authenticator
	Metrics     *handler.Metrics
	AuthLimiter *handler.RateLimiter

	Health        *handler.HealthHandler
	Users         *handler.UserHandler
	Videos        *handler.VideoHandler
	Comments      *handler.CommentHandler
	Likes         *handler.LikeHandler
	Playlists     *handler.PlaylistHandler
	Subscriptions *handler.SubscriptionHandler
	Tweets        *handler.TweetHandler
	Dashboard     *handler.DashboardHandler
}

func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger)
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.Failure(http.StatusNotFound, "route not found").Send(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.Failure(http.StatusMethodNotAllowed, "method not allowed").Send(w)
	})

	wrap := handler.ErrorHandlingMiddleware

	r.Get("/health", wrap(h.Health.HealthCheck))
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// Public session routes.
		r.Group(func(r chi.Router) {
			if h.AuthLimiter != nil {
				r.Use(h.AuthLimiter.Middleware)
			}
			r.Post("/users/register", wrap(h.Users.Register))
			r.Post("/users/login", wrap(h.Users.Login))
			r.Post("/users/refresh-token", wrap(h.Users.RefreshToken))
		})

		r.Group(func(r chi.Router) {
			r.Use(handler.AuthMiddleware(h.Auth))

			r.Route("/users", func(r chi.Router) {
				r.Post("/logout", wrap(h.Users.Logout))
				r.Post("/change-password", wrap(h.Users.ChangePassword))
				r.Patch("/change-password", wrap(h.Users.ChangePassword))
				r.Get("/current-user", wrap(h.Users.CurrentUser))
				r.Patch("/update-account-details", wrap(h.Users.UpdateAccountDetails))
				r.Patch("/update-avatar", wrap(h.Users.UpdateAvatar))
				r.Patch("/update-cover-image", wrap(h.Users.UpdateCoverImage))
				r.Get("/channel/{username}", wrap(h.Users.GetChannelProfile))
				r.Get("/watch-history", wrap(h.Users.WatchHistory))
			})

			r.Route("/videos", func(r chi.Router) {
				r.Get("/", wrap(h.Videos.ListVideos))
				r.Post("/", wrap(h.Videos.PublishVideo))
				r.Get("/{videoId}", wrap(h.Videos.GetVideo))
				r.Patch("/{videoId}", wrap(h.Videos.UpdateVideo))
				r.Delete("/{videoId}", wrap(h.Videos.DeleteVideo))
				r.Patch("/toggle/publish/{videoId}", wrap(h.Videos.TogglePublish))
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/{videoId}", wrap(h.Comments.ListComments))
				r.Post("/{videoId}", wrap(h.Comments.AddComment))
				r.Patch("/c/{commentId}", wrap(h.Comments.UpdateComment))
				r.Delete("/c/{commentId}", wrap(h.Comments.DeleteComment))
			})

			r.Route("/likes", func(r chi.Router) {
				r.Post("/toggle/v/{videoId}", wrap(h.Likes.ToggleVideoLike))
				r.Post("/toggle/c/{commentId}", wrap(h.Likes.ToggleCommentLike))
				r.Post("/toggle/t/{tweetId}", wrap(h.Likes.ToggleTweetLike))
				r.Get("/videos", wrap(h.Likes.LikedVideos))
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", wrap(h.Playlists.CreatePlaylist))
				r.Get("/user/{userId}", wrap(h.Playlists.UserPlaylists))
				r.Get("/{playlistId}", wrap(h.Playlists.GetPlaylist))
				r.Patch("/{playlistId}", wrap(h.Playlists.UpdatePlaylist))
				r.Delete("/{playlistId}", wrap(h.Playlists.DeletePlaylist))
				r.Patch("/add/{videoId}/{playlistId}", wrap(h.Playlists.AddVideo))
				r.Patch("/remove/{videoId}/{playlistId}", wrap(h.Playlists.RemoveVideo))
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/c/{channelId}", wrap(h.Subscriptions.ToggleSubscription))
				r.Get("/c/{channelId}", wrap(h.Subscriptions.ChannelSubscribers))
				r.Get("/u/{subscriberId}", wrap(h.Subscriptions.SubscribedChannels))
			})

			r.Route("/tweets", func(r chi.Router) {
				r.Post("/", wrap(h.Tweets.CreateTweet))
				r.Get("/user/{userId}", wrap(h.Tweets.UserTweets))
				r.Patch("/{tweetId}", wrap(h.Tweets.UpdateTweet))
				r.Delete("/{tweetId}", wrap(h.Tweets.DeleteTweet))
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", wrap(h.Dashboard.ChannelStats))
				r.Get("/videos", wrap(h.Dashboard.ChannelVideos))
			})
		})
	})

	return r
}
