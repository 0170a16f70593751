package domain

// SessionSnapshot is the immutable-at-read view of the current session.
//
// Invariants maintained by the session store:
//   - Loading starts true and becomes false exactly once per lifetime.
//   - IsAuthenticated implies User != nil; a nil User implies not authenticated.
//   - While Loading, User is nil and IsAuthenticated is false.
type SessionSnapshot struct {
	User            *UserProfile
	IsAuthenticated bool
	Loading         bool
}

// Credentials is the input to a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
