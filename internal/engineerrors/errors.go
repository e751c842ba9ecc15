package engineerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrNoBids          = errors.New("no bids found for auction")
	ErrConflict        = errors.New("record changed concurrently")
)

// Validation errors
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrInvalidFirstBid  = errors.New("first bid must equal the base price")
	ErrInvalidIncrement = errors.New("bid increase must be a positive multiple of the bid step")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrInvalidAuction   = errors.New("invalid auction")
	ErrNotParticipant   = errors.New("caller is not a participant of this meeting")
)

// Guard failures
var (
	ErrAuctionClosed     = errors.New("auction closed")
	ErrPastEndTime       = errors.New("meeting is past its scheduled end")
	ErrMeetingEnded      = errors.New("meeting ended")
	ErrTooEarly          = errors.New("deadline for this transition has not passed")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
)

// External dependency errors
var (
	ErrPaymentFailed = errors.New("payment request failed")
)
