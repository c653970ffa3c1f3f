package services

// Route paths mirror the web client's redirect surface. The CLI treats
// them as screen identifiers.
const (
	RouteLogin       = "/login"
	RouteStudentHome = "/dashboard"
	RouteAdminHome   = "/admin"
	RouteCheckEmail  = "/check-email"

	RouteVerifyPrefix   = "/verify-certificate/"
	RouteVerifyInvalid  = "/verify-certificate?error=invalid"
	RouteVerifyNotFound = "/verify-certificate?error=not_found"
	RouteVerifyFailed   = "/verify-certificate?error=error"
)

// Navigator is the redirect sink. The CLI app implements it by switching
// screens; tests record the requested paths.
type Navigator interface {
	Navigate(path string)
}
