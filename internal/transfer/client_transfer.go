package transfer

type ClientCreation struct {
	Name         string  `json:"name"`
	DeadlineDays int     `json:"deadline_days"`
	ApproverIDs  []int64 `json:"approvers"`
}
