package transcript

// Role identifies the author of a turn.
type Role string

const (
	// RoleUser marks a turn typed by the user.
	RoleUser Role = "user"
	// RoleModel marks a turn generated by the backend model.
	RoleModel Role = "model"
)

// Turn is one message in the conversation. Turns are immutable once
// authored, except for the most recent model turn while its response
// is still streaming.
type Turn struct {
	Role Role
	Text string
}
