package hierarchy

import "log"

// Member is one instrument slot inside a category.
type Member struct {
	ID    string
	Label string
}

// Category groups instruments under one branch of the tree.
type Category struct {
	ID      string
	Label   string
	Members []Member
}

// Schema fixes the tree shape independent of data: which categories
// exist and which entity belongs where. Membership is resolved once,
// here, into a strict partition: the hand-curated pools deliberately
// list some tickers under several groups, and the first category in the
// configured priority order wins. An entity must never contribute to two
// sibling branches, or the conservation invariant breaks.
type Schema struct {
	RootID     string
	RootLabel  string
	Categories []Category

	categoryOf map[string]string
	members    []Member
}

// NewSchema resolves the priority-ordered category list into a partition.
// Duplicate memberships after the first are dropped with a warning.
func NewSchema(rootID, rootLabel string, cats []Category) *Schema {
	s := &Schema{
		RootID:     rootID,
		RootLabel:  rootLabel,
		categoryOf: make(map[string]string),
	}
	for _, c := range cats {
		kept := Category{ID: c.ID, Label: c.Label}
		for _, m := range c.Members {
			if owner, dup := s.categoryOf[m.ID]; dup {
				log.Printf("[WARN] entity %s already in category %s, dropping duplicate in %s", m.ID, owner, c.ID)
				continue
			}
			s.categoryOf[m.ID] = c.ID
			kept.Members = append(kept.Members, m)
			s.members = append(s.members, m)
		}
		s.Categories = append(s.Categories, kept)
	}
	return s
}

// CategoryOf returns the single category owning the entity.
func (s *Schema) CategoryOf(entityID string) (string, bool) {
	c, ok := s.categoryOf[entityID]
	return c, ok
}

// Members returns every entity of the partition in priority order.
func (s *Schema) Members() []Member {
	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// EntityIDs returns the partitioned entity ids in priority order.
func (s *Schema) EntityIDs() []string {
	ids := make([]string, len(s.members))
	for i, m := range s.members {
		ids[i] = m.ID
	}
	return ids
}
