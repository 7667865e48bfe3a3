package devserver

// Route path constants
// All API routes are served under APIPrefix
const (
	APIPrefix = "/api"

	// Auth Routes
	RouteAuthMe             = APIPrefix + "/auth/me"
	RouteAuthLogin          = APIPrefix + "/auth/login"
	RouteAuthRegister       = APIPrefix + "/auth/register"
	RouteAuthChangePassword = APIPrefix + "/auth/change-password"

	// Game Routes
	RouteGames       = APIPrefix + "/games"
	RouteGamesAll    = APIPrefix + "/games/all"
	RouteGamesByDate = APIPrefix + "/games/date/{day}"
	RouteGame        = APIPrefix + "/games/{id}"
	RouteGameResult  = APIPrefix + "/games/{id}/result"

	// Admin Routes
	RouteAdminUsers      = APIPrefix + "/admin/users"
	RouteAdminUserVIP    = APIPrefix + "/admin/users/{id}/vip"
	RouteAdminUserStatus = APIPrefix + "/admin/users/{id}/status"

	// Community Routes
	RoutePosts          = APIPrefix + "/posts"
	RouteCommunityPosts = APIPrefix + "/community/posts"
	RoutePost           = APIPrefix + "/posts/{id}"
	RoutePostComments   = APIPrefix + "/posts/{id}/comments"

	RouteHealth = APIPrefix + "/health"
)
