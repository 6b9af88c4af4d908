package services

import (
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/policy"
)

// Expected failures. Each one carries the message shown to the client and
// the diagnostic written to the "error" field.
var (
	ErrMissingRegistrationFields = apierrors.New(apierrors.KindInvalidInput, "Please fill out every field.", "Missing username, email or password when registering.")
	ErrUsernameTaken             = apierrors.New(apierrors.KindConflict, "This username is already in use.", "There was a duplicate for username when registering.")
	ErrEmailTaken                = apierrors.New(apierrors.KindConflict, "This email is already in use.", "There was a duplicate for email when registering.")
	ErrAccountTaken              = apierrors.New(apierrors.KindConflict, "This username or email is already in use.", "Unique constraint violated when creating user.")

	ErrMissingLoginFields = apierrors.New(apierrors.KindInvalidInput, "Please fill out all fields.", "Missing username or password when logging in.")
	ErrUnknownUsername    = apierrors.New(apierrors.KindUnauthorized, "There is no user with the given username.", "No user found with the given username.")
	ErrPasswordMismatch   = apierrors.New(apierrors.KindUnauthorized, "Password does not match.", "Password hash mismatch.")
	ErrInactiveProfile    = apierrors.New(apierrors.KindUnauthorized, "This profile is inactive.", "The user trying to log in is inactive.")

	ErrRefreshRejected  = apierrors.New(apierrors.KindTokenRejected, "Forbidden.", "Refresh token was rejected.")
	ErrUnknownPrincipal = apierrors.New(apierrors.KindUnauthorized, "Unauthorized.", "The authenticated user no longer exists or is inactive.")

	ErrUserNotFound         = apierrors.New(apierrors.KindNotFound, "There is no user with the given id.", "User not found.")
	ErrNoFlagsGiven         = apierrors.New(apierrors.KindInvalidInput, "Not enough information provided.", "Neither isActive nor isAdmin was given when updating user flags.")
	ErrEmptySearch          = apierrors.New(apierrors.KindInvalidInput, "Invalid request parameters.", "Missing search query.")
	ErrMissingProjectFields = apierrors.New(apierrors.KindInvalidInput, "Not enough information provided.", "Missing name or shortDescription for project.")
	ErrInvalidDate          = apierrors.New(apierrors.KindInvalidInput, "The given date is not valid.", "Date is not RFC 3339 or YYYY-MM-DD.")
	ErrProjectNotFound      = apierrors.New(apierrors.KindNotFound, "There is no project with this name.", "Project not found.")
	ErrProjectNameTaken     = apierrors.New(apierrors.KindConflict, "This project name is already in use.", "There was a duplicate for name when saving a project.")
	ErrNoRecentProject      = apierrors.New(apierrors.KindNotFound, "You don't have a recently viewed project!", "User doesn't have a recently viewed project.")

	ErrMissingTaskFields    = apierrors.New(apierrors.KindInvalidInput, "Not enough credentials.", "Missing title, shortDescription or assignedTo for task.")
	ErrInvalidStatus        = apierrors.New(apierrors.KindInvalidInput, "There is no status that you given.", "Status is not an accepted value.")
	ErrInvalidPriority      = apierrors.New(apierrors.KindInvalidInput, "There is no priority that you given.", "Priority is not an accepted value.")
	ErrAssigneeNotInProject = apierrors.New(apierrors.KindInvalidInput, "The assigned user is not part of this project.", "Assignee is neither the owner nor a member of the project.")
	ErrTaskNotFound         = apierrors.New(apierrors.KindNotFound, "There is no task with this id in the project.", "Task not found in project.")

	ErrAINotConfigured = apierrors.New(apierrors.KindServiceUnavailable, "Task generation is not available.", "AI service is not configured.")
	ErrAIEmptyText     = apierrors.New(apierrors.KindInvalidInput, "Please describe the work to plan.", "Missing text for task generation.")
	ErrAINoValidTasks  = apierrors.New(apierrors.KindInvalidInput, "No tasks could be generated from the given text.", "AI output contained no valid tasks.")
)

var deniedErrors = map[policy.Reason]*apierrors.AppError{
	policy.ReasonNotParticipant:   apierrors.New(apierrors.KindForbidden, "You don't have access to this project.", "User is not the owner nor a member of the project."),
	policy.ReasonOwnerOrAdminOnly: apierrors.New(apierrors.KindForbidden, "You don't have authority to do this in this project.", "User is not the owner of the project."),
	policy.ReasonAdminOnly:        apierrors.New(apierrors.KindForbidden, "You don't have access to this function.", "User is not an admin."),
	policy.ReasonProjectInactive:  apierrors.New(apierrors.KindForbidden, "This project is inactive.", "The project is inactive."),
	policy.ReasonSelfAdd:          apierrors.New(apierrors.KindForbidden, "You can't add yourself to this project.", "User tried to add themselves as a member."),
	policy.ReasonOwnerAsMember:    apierrors.New(apierrors.KindForbidden, "The project owner can't be a member.", "Member to add is the owner of the project."),
	policy.ReasonAlreadyMember:    apierrors.New(apierrors.KindConflict, "This user is already a member of this project.", "The user getting added is already a member of this project."),
	policy.ReasonOwnerRemoval:     apierrors.New(apierrors.KindForbidden, "You can't remove the project owner.", "Member is the owner of the project."),
	policy.ReasonNotMember:        apierrors.New(apierrors.KindForbidden, "This user is not a member of this project.", "The user getting removed is not member of this project."),
	policy.ReasonAlreadyOwner:     apierrors.New(apierrors.KindForbidden, "This user is already the project owner.", "New owner is the current owner."),
	policy.ReasonSelfUpdate:       apierrors.New(apierrors.KindForbidden, "You can't change your own flags.", "Admin tried to change their own flags."),
}

// Denied returns the error for a refused policy decision.
func Denied(reason policy.Reason) error {
	if err, ok := deniedErrors[reason]; ok {
		return err
	}
	return apierrors.New(apierrors.KindInternal, apierrors.MsgSomethingWentWrong, "unhandled policy reason: "+string(reason))
}

func enforce(d policy.Decision) error {
	if d.Allowed {
		return nil
	}
	return Denied(d.Reason)
}
