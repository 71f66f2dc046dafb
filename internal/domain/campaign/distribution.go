package campaign

// Share is the contiguous slice of the pool handed to one agent.
type Share struct {
	AgentID     uint64
	CustomerIDs []uint64
}

// Split gives every agent floor(len(pool)/len(agents)) customers in pool
// order. Leftovers stay unassigned and are returned as the remainder.
func Split(agentIDs, pool []uint64) ([]Share, []uint64, error) {
	if len(agentIDs) == 0 {
		return nil, nil, ErrNoAgents
	}
	if len(pool) == 0 {
		return nil, nil, ErrNothingToDo
	}
	per := len(pool) / len(agentIDs)
	if per == 0 {
		return nil, nil, ErrInsufficientVolume
	}

	shares := make([]Share, 0, len(agentIDs))
	for i, agentID := range agentIDs {
		shares = append(shares, Share{AgentID: agentID, CustomerIDs: pool[i*per : (i+1)*per]})
	}
	return shares, pool[per*len(agentIDs):], nil
}
