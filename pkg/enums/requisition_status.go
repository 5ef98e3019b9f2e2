package enums

type RequisitionStatus string

const (
	RequisitionStatusPending   RequisitionStatus = "pending"
	RequisitionStatusApproved  RequisitionStatus = "approved"
	RequisitionStatusRejected  RequisitionStatus = "rejected"
	RequisitionStatusFulfilled RequisitionStatus = "fulfilled"
)

func (s RequisitionStatus) IsValid() bool {
	switch s {
	case RequisitionStatusPending, RequisitionStatusApproved, RequisitionStatusRejected, RequisitionStatusFulfilled:
		return true
	}
	return false
}
