package skill

import "github.com/udisondev/skillforge/internal/conf"

// SkillNone is the type identifier of NoneSkill.
const SkillNone = "none"

// NoneSkill is an inert skill type for grouping nodes and skills whose
// whole effect lives in their requirements.
type NoneSkill struct{}

func (n *NoneSkill) Load(_ *conf.Section) error { return nil }

func (n *NoneSkill) Apply(_ Subject) error { return nil }

func (n *NoneSkill) Unapply(_ Subject) error { return nil }
