package domain

type View string

const (
	ViewLanding   View = "/"
	ViewLogin     View = "/login"
	ViewOTP       View = "/otp"
	ViewDashboard View = "/dashboard"
	ViewUserList  View = "/user-list"
)

// HomeFor picks the landing view of an authorized session.
func HomeFor(role Role) View {
	if role.IsAdmin() {
		return ViewUserList
	}
	return ViewDashboard
}
