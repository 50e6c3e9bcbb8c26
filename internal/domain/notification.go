package domain

type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notification is user-facing feedback such as a toast.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Routes the storefront navigates to.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)
