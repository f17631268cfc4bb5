package enums

import "fmt"

// SupplyRequestStatus tracks a vendor supply request through its lifecycle.
type SupplyRequestStatus string

const (
	SupplyRequestStatusPending   SupplyRequestStatus = "pending"
	SupplyRequestStatusApproved  SupplyRequestStatus = "approved"
	SupplyRequestStatusOrdered   SupplyRequestStatus = "ordered"
	SupplyRequestStatusReceived  SupplyRequestStatus = "received"
	SupplyRequestStatusCancelled SupplyRequestStatus = "cancelled"
)

var validSupplyRequestStatuses = []SupplyRequestStatus{
	SupplyRequestStatusPending,
	SupplyRequestStatusApproved,
	SupplyRequestStatusOrdered,
	SupplyRequestStatusReceived,
	SupplyRequestStatusCancelled,
}

// supplyRequestTransitions lists the allowed next statuses per current status.
var supplyRequestTransitions = map[SupplyRequestStatus][]SupplyRequestStatus{
	SupplyRequestStatusPending:  {SupplyRequestStatusApproved, SupplyRequestStatusCancelled},
	SupplyRequestStatusApproved: {SupplyRequestStatusOrdered, SupplyRequestStatusCancelled},
	SupplyRequestStatusOrdered:  {SupplyRequestStatusReceived},
}

// String implements fmt.Stringer.
func (s SupplyRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known SupplyRequestStatus.
func (s SupplyRequestStatus) IsValid() bool {
	for _, candidate := range validSupplyRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
func (s SupplyRequestStatus) CanTransitionTo(next SupplyRequestStatus) bool {
	for _, candidate := range supplyRequestTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseSupplyRequestStatus converts raw input into a SupplyRequestStatus.
func ParseSupplyRequestStatus(value string) (SupplyRequestStatus, error) {
	for _, candidate := range validSupplyRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid supply request status %q", value)
}
