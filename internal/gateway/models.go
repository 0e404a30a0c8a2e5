// internal/gateway/models.go
package gateway

// Role names the pipeline role a prompt is sent under. Each role maps to its
// own provider model and sampling settings.
type Role string

const (
	RoleClassification Role = "classification"
	RoleReasoning      Role = "reasoning"
	RoleContent        Role = "content"
)

// Request is one structured prompt for a provider.
type Request struct {
	Role   Role
	System string
	User   string
	Preset string // optional per-request model preset selector
}
