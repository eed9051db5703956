package skill

import "github.com/udisondev/skillforge/internal/conf"

// SkillPermission is the type identifier of PermissionSkill.
const SkillPermission = "permission"

// PermissionSkill grants its configured permission nodes while applied.
// Config shape:
//
//	type: permission
//	with:
//	  permissions:
//	    - some.permission.node
type PermissionSkill struct {
	permissions []string
}

// Permissions returns the nodes granted by this skill.
func (p *PermissionSkill) Permissions() []string {
	return p.permissions
}

// Load reads the "with.permissions" list from the section.
func (p *PermissionSkill) Load(cfg *conf.Section) error {
	p.permissions = cfg.StringSlice("with.permissions")
	return nil
}

// Apply grants every configured node to the subject.
func (p *PermissionSkill) Apply(s Subject) error {
	for _, node := range p.permissions {
		s.GrantPermission(node)
	}
	return nil
}

// Unapply revokes every configured node from the subject.
func (p *PermissionSkill) Unapply(s Subject) error {
	for _, node := range p.permissions {
		s.RevokePermission(node)
	}
	return nil
}
