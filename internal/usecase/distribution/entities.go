package distribution

type AgentShare struct {
	AgentID uint64 `json:"agent_id"`
	Count   int    `json:"count"`
}

type DistributeResult struct {
	CampaignID  uint64       `json:"campaign_id"`
	Distributed int          `json:"distributed"`
	PerAgent    int          `json:"per_agent"`
	Remainder   int          `json:"remainder"`
	Shares      []AgentShare `json:"shares"`
}

// RechurnInput narrows a rechurn. Empty slices mean every stalled customer.
type RechurnInput struct {
	CustomerIDs []uint64 `json:"customer_ids"`
	Codes       []string `json:"codes"`
}

type RechurnResult struct {
	CampaignID  uint64   `json:"campaign_id"`
	Rechurned   int      `json:"rechurned"`
	CustomerIDs []uint64 `json:"customer_ids"`
}
