package skill

import (
	"fmt"

	"github.com/udisondev/skillforge/internal/conf"
)

// RequirementPermission is the type identifier of PermissionRequirement.
const RequirementPermission = "permission"

// PermissionRequirement passes when the subject holds every configured
// permission node.
type PermissionRequirement struct {
	baseRequirement
	permissions []string
}

// newPermissionRequirement builds an already loaded requirement for the
// given nodes. Used for the implicit requirement of restricted skills.
func newPermissionRequirement(nodes ...string) *PermissionRequirement {
	return &PermissionRequirement{
		baseRequirement: baseRequirement{typ: RequirementPermission, name: "Permission"},
		permissions:     nodes,
	}
}

// Permissions returns the required permission nodes.
func (r *PermissionRequirement) Permissions() []string {
	return r.permissions
}

// Load reads the "permissions" list from the section.
func (r *PermissionRequirement) Load(cfg *conf.Section) error {
	r.loadBase(cfg, RequirementPermission, "Permission")
	r.permissions = cfg.StringSlice("permissions")
	return nil
}

// Test checks that the subject holds all permission nodes.
func (r *PermissionRequirement) Test(s Subject) TestResult {
	for _, node := range r.permissions {
		if !s.HasPermission(node) {
			return TestFailure(fmt.Sprintf("missing the %s permission", node))
		}
	}
	return TestSuccess()
}
