package entity

// Principal is the authenticated caller, as asserted by the external
// identity subsystem. Group memberships are claims issued alongside the
// user id; the engine trusts them and never queries the social graph.
type Principal struct {
	UserID string   `json:"user_id"`
	Groups []string `json:"groups,omitempty"`
}

func (that *Principal) InGroup(groupID string) bool {
	for _, id := range that.Groups {
		if id == groupID {
			return true
		}
	}

	return false
}
