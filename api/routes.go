package api

// Remote API paths, relative to the configured base URL.
const (
	RouteAuthMe             = "/auth/me"
	RouteAuthLogin          = "/auth/login"
	RouteAuthRegister       = "/auth/register"
	RouteAuthChangePassword = "/auth/change-password"

	RouteGames       = "/games"
	RouteGamesAll    = "/games/all"
	RouteGamesByDate = "/games/date/%s"
	RouteGame        = "/games/%s"
	RouteGameResult  = "/games/%s/result"

	RouteAdminUsers      = "/admin/users"
	RouteAdminUserVIP    = "/admin/users/%s/vip"
	RouteAdminUserStatus = "/admin/users/%s/status"

	RoutePosts          = "/posts"
	RouteCommunityPosts = "/community/posts"
	RoutePost           = "/posts/%s"
	RoutePostComments   = "/posts/%s/comments"
)
