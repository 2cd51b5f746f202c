// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Event validation errors
	CodeEventTitleEmpty         Code = "EVENT_TITLE_EMPTY"
	CodeEventTitleTooLong       Code = "EVENT_TITLE_TOO_LONG"
	CodeEventDescriptionTooLong Code = "EVENT_DESCRIPTION_TOO_LONG"
	CodeEventLocationEmpty      Code = "EVENT_LOCATION_EMPTY"
	CodeEventLocationTooLong    Code = "EVENT_LOCATION_TOO_LONG"
	CodeEventInvalidCapacity    Code = "EVENT_INVALID_CAPACITY"
	CodeEventEndNotAfterStart   Code = "EVENT_END_NOT_AFTER_START"
	CodeEventStartInPast        Code = "EVENT_START_IN_PAST"
	CodeEventCreatorMissing     Code = "EVENT_CREATOR_MISSING"

	// Event lifecycle errors
	CodeEventInvalidStatusTransition Code = "EVENT_INVALID_STATUS_TRANSITION"
	CodeEventStatusDisallowsOp       Code = "EVENT_STATUS_DISALLOWS_OPERATION"
	CodeEventAlreadyCancelled        Code = "EVENT_ALREADY_CANCELLED"

	// Booking errors
	CodeEventNotPublished Code = "EVENT_NOT_PUBLISHED"
	CodeEventCancelled    Code = "EVENT_CANCELLED"
	CodeEventEnded        Code = "EVENT_ENDED"
	CodeEventFull         Code = "EVENT_FULL"
	CodeEventAtCapacity   Code = "EVENT_AT_CAPACITY"

	// Registration errors
	CodeRegistrationPendingExists    Code = "REGISTRATION_PENDING_EXISTS"
	CodeRegistrationConfirmedExists  Code = "REGISTRATION_CONFIRMED_EXISTS"
	CodeRegistrationAlreadyConfirmed Code = "REGISTRATION_ALREADY_CONFIRMED"
	CodeRegistrationAlreadyCancelled Code = "REGISTRATION_ALREADY_CANCELLED"
	CodeRegistrationCancelledLocked  Code = "REGISTRATION_CANCELLED_LOCKED"
	CodeRegistrationNotOwned         Code = "REGISTRATION_NOT_OWNED"

	// Ticket errors
	CodeTicketNotConfirmed Code = "TICKET_NOT_CONFIRMED"
	CodeTicketNotOwned     Code = "TICKET_NOT_OWNED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeEventTitleEmpty,
		CodeEventTitleTooLong,
		CodeEventDescriptionTooLong,
		CodeEventLocationEmpty,
		CodeEventLocationTooLong,
		CodeEventInvalidCapacity,
		CodeEventEndNotAfterStart,
		CodeEventStartInPast,
		CodeEventCreatorMissing:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeEventInvalidStatusTransition,
		CodeEventStatusDisallowsOp,
		CodeEventAlreadyCancelled,
		CodeEventNotPublished,
		CodeEventCancelled,
		CodeEventEnded,
		CodeEventFull,
		CodeEventAtCapacity,
		CodeRegistrationAlreadyConfirmed,
		CodeRegistrationAlreadyCancelled,
		CodeRegistrationCancelledLocked,
		CodeTicketNotConfirmed:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - duplicate active registration for (user, event)
	case CodeRegistrationPendingExists,
		CodeRegistrationConfirmedExists:
		return codes.AlreadyExists

	// PermissionDenied - actor does not own the resource
	case CodeRegistrationNotOwned,
		CodeTicketNotOwned:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
