package character

// Update is a sparse patch over one character. Nil fields mean no change.
type Update struct {
	ID         string           `json:"id"`
	Attributes map[string]int   `json:"attributes,omitempty"`
	Health     *HealthUpdate    `json:"health,omitempty"`
	Resources  []ResourceUpdate `json:"resources,omitempty"`
	Skills     []SkillUpdate    `json:"skills,omitempty"`
}

// HealthUpdate changes health. Delta takes precedence over Current.
type HealthUpdate struct {
	Current *int `json:"current,omitempty"`
	Max     *int `json:"max,omitempty"`
	Delta   *int `json:"delta,omitempty"`
}

// ResourceUpdate changes one pool, matched by name or type tag.
type ResourceUpdate struct {
	Name    string `json:"name"`
	Current *int   `json:"current,omitempty"`
	Max     *int   `json:"max,omitempty"`
	Delta   *int   `json:"delta,omitempty"`
}

// SkillUpdate changes one skill, matched by item id.
type SkillUpdate struct {
	ID    string `json:"id"`
	Value *int   `json:"value,omitempty"`
	Delta *int   `json:"delta,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return len(u.Attributes) == 0 && u.Health == nil && len(u.Resources) == 0 && len(u.Skills) == 0
}

// Int returns a pointer to v, for building updates.
func Int(v int) *int { return &v }
