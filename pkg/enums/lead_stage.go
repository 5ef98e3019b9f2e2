package enums

// LeadStage tracks where a lead sits in the sales pipeline.
type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageProposal  LeadStage = "proposal"
	LeadStageWon       LeadStage = "won"
	LeadStageLost      LeadStage = "lost"
)

func (s LeadStage) IsValid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageQualified, LeadStageProposal, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}

// IsClosed reports whether the lead has left the active pipeline.
func (s LeadStage) IsClosed() bool {
	return s == LeadStageWon || s == LeadStageLost
}
