package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeEventTitleEmpty              = "EVENT_TITLE_EMPTY"
	CodeEventTitleTooLong            = "EVENT_TITLE_TOO_LONG"
	CodeEventDescriptionTooLong      = "EVENT_DESCRIPTION_TOO_LONG"
	CodeEventLocationEmpty           = "EVENT_LOCATION_EMPTY"
	CodeEventLocationTooLong         = "EVENT_LOCATION_TOO_LONG"
	CodeEventInvalidCapacity         = "EVENT_INVALID_CAPACITY"
	CodeEventEndNotAfterStart        = "EVENT_END_NOT_AFTER_START"
	CodeEventStartInPast             = "EVENT_START_IN_PAST"
	CodeEventCreatorMissing          = "EVENT_CREATOR_MISSING"
	CodeEventInvalidStatusTransition = "EVENT_INVALID_STATUS_TRANSITION"
	CodeEventStatusDisallowsOp       = "EVENT_STATUS_DISALLOWS_OPERATION"
	CodeEventAlreadyCancelled        = "EVENT_ALREADY_CANCELLED"
	CodeEventNotPublished            = "EVENT_NOT_PUBLISHED"
	CodeEventCancelled               = "EVENT_CANCELLED"
	CodeEventEnded                   = "EVENT_ENDED"
	CodeEventFull                    = "EVENT_FULL"
	CodeEventAtCapacity              = "EVENT_AT_CAPACITY"
	CodeRegistrationPendingExists    = "REGISTRATION_PENDING_EXISTS"
	CodeRegistrationConfirmedExists  = "REGISTRATION_CONFIRMED_EXISTS"
	CodeRegistrationAlreadyConfirmed = "REGISTRATION_ALREADY_CONFIRMED"
	CodeRegistrationAlreadyCancelled = "REGISTRATION_ALREADY_CANCELLED"
	CodeRegistrationCancelledLocked  = "REGISTRATION_CANCELLED_LOCKED"
	CodeRegistrationNotOwned         = "REGISTRATION_NOT_OWNED"
	CodeTicketNotConfirmed           = "TICKET_NOT_CONFIRMED"
	CodeTicketNotOwned               = "TICKET_NOT_OWNED"
	CodeNotFound                     = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Event validation errors
		CodeEventTitleEmpty:         "Event title cannot be empty",
		CodeEventTitleTooLong:       "Event title cannot exceed {{.MaxLength}} characters",
		CodeEventDescriptionTooLong: "Event description cannot exceed {{.MaxLength}} characters",
		CodeEventLocationEmpty:      "Event location cannot be empty",
		CodeEventLocationTooLong:    "Event location cannot exceed {{.MaxLength}} characters",
		CodeEventInvalidCapacity:    "Event capacity must be a positive number",
		CodeEventEndNotAfterStart:   "End date must be after start date",
		CodeEventStartInPast:        "Start date cannot be in the past",
		CodeEventCreatorMissing:     "Creator is required to create an event",

		// Event lifecycle errors
		CodeEventInvalidStatusTransition: "Cannot transition event from {{.FromStatus}} to {{.ToStatus}}",
		CodeEventStatusDisallowsOp:       "Event status {{.Status}} does not allow {{.Operation}}",
		CodeEventAlreadyCancelled:        "Event is already cancelled",

		// Booking errors
		CodeEventNotPublished: "Cannot register for an event that is not published",
		CodeEventCancelled:    "Cannot register for a cancelled event",
		CodeEventEnded:        "Cannot register for a past event",
		CodeEventFull:         "This event is fully booked. No seats remaining.",
		CodeEventAtCapacity:   "Event is at full capacity",

		// Registration errors
		CodeRegistrationPendingExists:    "You already have a pending reservation for this event",
		CodeRegistrationConfirmedExists:  "You already have a confirmed reservation for this event",
		CodeRegistrationAlreadyConfirmed: "Registration is already confirmed",
		CodeRegistrationAlreadyCancelled: "This reservation is already cancelled",
		CodeRegistrationCancelledLocked:  "Cannot confirm a cancelled registration",
		CodeRegistrationNotOwned:         "You can only cancel your own reservations",

		// Ticket errors
		CodeTicketNotConfirmed: "Ticket is only available for confirmed registrations",
		CodeTicketNotOwned:     "You can only download tickets for your own registrations",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
	},
}
