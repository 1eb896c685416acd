package transport

// CredentialsRequest is the body of sign-up and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	TTL int `json:"ttl_seconds"`
}

type TaskRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type LogRequest struct {
	Hours float64 `json:"hours"`
	Notes string  `json:"notes"`
	Mood  int     `json:"mood"`
	Date  string  `json:"date"`
}

type HabitRequest struct {
	Title string `json:"title"`
}
