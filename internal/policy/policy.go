// Package policy decides whether a principal may perform an action on a
// project. It performs no I/O: callers load the current project state and
// pass it in, so every decision reflects the latest committed write.
package policy

// Principal is the authenticated caller.
type Principal struct {
	UserID  uint64
	IsAdmin bool
}

// ProjectState is the slice of a project the policy needs.
type ProjectState struct {
	OwnerID  uint64
	IsActive bool
	IsMember bool
}

// Role is the strongest relationship a principal has with a project.
// Roles are ordered: a higher role satisfies every lower requirement.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleOwner
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// ResolveRole returns the role of p on a project in state s.
func ResolveRole(p Principal, s ProjectState) Role {
	switch {
	case p.IsAdmin:
		return RoleAdmin
	case p.UserID != 0 && p.UserID == s.OwnerID:
		return RoleOwner
	case s.IsMember:
		return RoleMember
	default:
		return RoleNone
	}
}

type Action string

const (
	ActionViewProject       Action = "view_project"
	ActionUpdateProject     Action = "update_project"
	ActionViewActiveStatus  Action = "view_active_status"
	ActionSetActiveStatus   Action = "set_active_status"
	ActionTransferOwnership Action = "transfer_ownership"
	ActionListMembers       Action = "list_members"
	ActionAddMember         Action = "add_member"
	ActionRemoveMember      Action = "remove_member"
	ActionListTasks         Action = "list_tasks"
	ActionCreateTask        Action = "create_task"
	ActionUpdateTask        Action = "update_task"
	ActionUpdateTaskStatus  Action = "update_task_status"
	ActionSearchProjects    Action = "search_projects"
	ActionListUsers         Action = "list_users"
	ActionUpdateUser        Action = "update_user"
)

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNotParticipant   Reason = "not owner, member or admin"
	ReasonOwnerOrAdminOnly Reason = "only the owner or an admin may do this"
	ReasonAdminOnly        Reason = "admin only"
	ReasonProjectInactive  Reason = "project inactive"
	ReasonSelfAdd          Reason = "cannot add yourself"
	ReasonOwnerAsMember    Reason = "owner cannot be a member"
	ReasonAlreadyMember    Reason = "already a member"
	ReasonOwnerRemoval     Reason = "owner cannot be removed"
	ReasonNotMember        Reason = "not a member"
	ReasonAlreadyOwner     Reason = "already the owner"
	ReasonSelfUpdate       Reason = "cannot change your own flags"
	ReasonUnknownAction    Reason = "unknown action"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

type rule struct {
	minRole       Role
	requireActive bool
}

var rules = map[Action]rule{
	ActionViewProject:       {RoleMember, true},
	ActionUpdateProject:     {RoleMember, true},
	ActionListMembers:       {RoleMember, true},
	ActionListTasks:         {RoleMember, true},
	ActionCreateTask:        {RoleMember, true},
	ActionUpdateTask:        {RoleMember, true},
	ActionUpdateTaskStatus:  {RoleMember, true},
	ActionViewActiveStatus:  {RoleMember, false},
	ActionAddMember:         {RoleOwner, true},
	ActionRemoveMember:      {RoleOwner, true},
	ActionTransferOwnership: {RoleAdmin, false},
	ActionSetActiveStatus:   {RoleAdmin, false},
}

// Decide applies the rule table to a project-scoped action.
// Admins are always allowed; they bypass ownership and the active check.
func Decide(p Principal, s ProjectState, a Action) Decision {
	r, ok := rules[a]
	if !ok {
		return deny(ReasonUnknownAction)
	}

	role := ResolveRole(p, s)
	if role == RoleAdmin {
		return allow()
	}
	if r.minRole == RoleAdmin {
		return deny(ReasonAdminOnly)
	}
	if role == RoleNone {
		return deny(ReasonNotParticipant)
	}
	if role < r.minRole {
		return deny(ReasonOwnerOrAdminOnly)
	}
	if r.requireActive && !s.IsActive {
		return deny(ReasonProjectInactive)
	}
	return allow()
}

// DecideAdmin handles actions that are not tied to a project.
func DecideAdmin(p Principal, a Action) Decision {
	switch a {
	case ActionSearchProjects, ActionListUsers, ActionUpdateUser:
	default:
		return deny(ReasonUnknownAction)
	}
	if !p.IsAdmin {
		return deny(ReasonAdminOnly)
	}
	return allow()
}

// Target is the user a membership or ownership change applies to.
type Target struct {
	UserID   uint64
	IsMember bool
}

// DecideAddMember allows the owner or an admin to add someone who is not
// already part of the project. Nobody may add themselves.
func DecideAddMember(p Principal, s ProjectState, t Target) Decision {
	if d := Decide(p, s, ActionAddMember); !d.Allowed {
		return d
	}
	switch {
	case t.UserID == p.UserID:
		return deny(ReasonSelfAdd)
	case t.UserID == s.OwnerID:
		return deny(ReasonOwnerAsMember)
	case t.IsMember:
		return deny(ReasonAlreadyMember)
	}
	return allow()
}

// DecideRemoveMember never allows removing the owner, not even for admins.
func DecideRemoveMember(p Principal, s ProjectState, t Target) Decision {
	if d := Decide(p, s, ActionRemoveMember); !d.Allowed {
		return d
	}
	if t.UserID == s.OwnerID {
		return deny(ReasonOwnerRemoval)
	}
	if !t.IsMember {
		return deny(ReasonNotMember)
	}
	return allow()
}

func DecideTransfer(p Principal, s ProjectState, t Target) Decision {
	if d := Decide(p, s, ActionTransferOwnership); !d.Allowed {
		return d
	}
	if t.UserID == s.OwnerID {
		return deny(ReasonAlreadyOwner)
	}
	return allow()
}

// DecideUserUpdate lets an admin change another user's flags.
func DecideUserUpdate(p Principal, targetUserID uint64) Decision {
	if d := DecideAdmin(p, ActionUpdateUser); !d.Allowed {
		return d
	}
	if targetUserID == p.UserID {
		return deny(ReasonSelfUpdate)
	}
	return allow()
}
