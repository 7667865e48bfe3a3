package devserver

import "net/http"

func (s *Server) initRoutes() {
	public := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth())
	admin := s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), public...))

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware(s.RateLimitMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), authed...))
	s.RegisterRouteHandler("PATCH "+RouteAuthChangePassword, ChainMiddleware(s.ChangePasswordHandler(), authed...))

	// GAMES
	s.RegisterRouteHandler("GET "+RouteGames, ChainMiddleware(s.ListGamesHandler(), public...))
	s.RegisterRouteHandler("GET "+RouteGamesByDate, ChainMiddleware(s.GamesByDateHandler(), public...))
	s.RegisterRouteHandler("GET "+RouteGamesAll, ChainMiddleware(s.ListGamesHandler(), admin...))
	s.RegisterRouteHandler("POST "+RouteGames, ChainMiddleware(s.CreateGameHandler(), admin...))
	s.RegisterRouteHandler("DELETE "+RouteGame, ChainMiddleware(s.DeleteGameHandler(), admin...))
	s.RegisterRouteHandler("PATCH "+RouteGameResult, ChainMiddleware(s.SetResultHandler(), admin...))

	// ADMIN
	s.RegisterRouteHandler("GET "+RouteAdminUsers, ChainMiddleware(s.ListUsersHandler(), admin...))
	s.RegisterRouteHandler("PATCH "+RouteAdminUserVIP, ChainMiddleware(s.SetUserVIPHandler(), admin...))
	s.RegisterRouteHandler("PATCH "+RouteAdminUserStatus, ChainMiddleware(s.SetUserStatusHandler(), admin...))

	// COMMUNITY
	s.RegisterRouteHandler("GET "+RoutePosts, ChainMiddleware(s.ListPostsHandler(), authed...))
	s.RegisterRouteHandler("POST "+RouteCommunityPosts, ChainMiddleware(s.CreatePostHandler(), authed...))
	s.RegisterRouteHandler("POST "+RoutePostComments, ChainMiddleware(s.ReplyHandler(), authed...))
	s.RegisterRouteHandler("DELETE "+RoutePost, ChainMiddleware(s.DeletePostHandler(), admin...))

	// CORS preflight for every API path
	s.RegisterRouteHandler("OPTIONS "+APIPrefix+"/", ChainMiddleware(s.NotFoundHandler(), public...))
	s.RegisterRouteHandler(APIPrefix+"/", ChainMiddleware(s.NotFoundHandler(), public...))
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	}
}
