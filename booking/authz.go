package booking

// Roles as supplied by the external auth collaborator. The engine trusts
// them as verified claims.
const (
	RoleMember = "MEMBER"
	RoleStaff  = "STAFF"
	RoleAdmin  = "ADMIN"
)

// Identity is the verified claim set attached to a request.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) IsStaff() bool {
	return id.Role == RoleStaff || id.Role == RoleAdmin
}

type Action string

const (
	ActionCreateReservation  Action = "reservation:create"
	ActionApproveReservation Action = "reservation:approve"
	ActionCancelReservation  Action = "reservation:cancel"
	ActionCheckoutLoan       Action = "loan:checkout"
	ActionReturnLoan         Action = "loan:return"
	ActionManageItems        Action = "item:manage"
	ActionListUsers          Action = "user:list"
)

var staffOnly = map[Action]bool{
	ActionApproveReservation: true,
	ActionCancelReservation:  true,
	ActionCheckoutLoan:       true,
	ActionReturnLoan:         true,
	ActionManageItems:        true,
	ActionListUsers:          true,
}

// CanPerform is the capability predicate evaluated inside each operation's
// entry point. Members may create reservations; every mutation of another
// record's lifecycle is staff/admin only.
func CanPerform(id Identity, a Action) bool {
	if staffOnly[a] {
		return id.IsStaff()
	}
	return id.UserID != ""
}

// ScopedUserID returns the user filter a list query must enforce: members
// only ever see their own records, staff/admin may pass any filter through
// (empty means all users).
func ScopedUserID(id Identity, requested string) string {
	if !id.IsStaff() {
		return id.UserID
	}
	return requested
}
