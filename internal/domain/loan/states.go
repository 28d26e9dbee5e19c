package loan

type Status string

const (
	StatusApplied                Status = "applied"
	StatusAssignedToVerification Status = "assigned_to_verification"
	StatusVerificationDone       Status = "verification_done"
	StatusManagerApproved        Status = "manager_approved"
	StatusPendingAdminApproval   Status = "pending_admin_approval"
	StatusAdminApproved          Status = "admin_approved"
	StatusSanctionSent           Status = "sanction_sent"
	StatusSignedReceived         Status = "signed_received"
	StatusActive                 Status = "active"
	StatusCompleted              Status = "completed"
	StatusRejected               Status = "rejected"
)

// allowedNext is the workflow transition table. A transition absent from the
// table is rejected unless the engine runs in permissive mode, which restores
// the looser legacy behavior for compatibility testing.
var allowedNext = map[Status][]Status{
	StatusApplied:                {StatusAssignedToVerification},
	StatusAssignedToVerification: {StatusVerificationDone, StatusRejected},
	StatusVerificationDone:       {StatusManagerApproved, StatusPendingAdminApproval, StatusRejected},
	StatusPendingAdminApproval:   {StatusAdminApproved, StatusRejected},
	StatusManagerApproved:        {StatusSanctionSent},
	StatusAdminApproved:          {StatusSanctionSent},
	StatusSanctionSent:           {StatusSignedReceived},
	StatusSignedReceived:         {StatusActive},
	StatusActive:                 {StatusCompleted},
}

// CanTransition reports whether from → to is in the transition table.
func CanTransition(from, to Status) bool {
	for _, s := range allowedNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further workflow transitions leave s.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusRejected
}
