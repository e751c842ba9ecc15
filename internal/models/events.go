package models

// Event log entry types
const (
	EventBidPlaced        = "BID_PLACED"
	EventAuctionClosed    = "AUCTION_CLOSED"
	EventBidRefundIssued  = "BID_REFUND_ISSUED"
	EventBidRefundFailed  = "BID_REFUND_FAILED"
	EventMeetingCreated   = "MEETING_CREATED"
	EventCreatorStarted   = "CREATOR_STREAM_STARTED"
	EventCreatorJoined    = "CREATOR_JOINED"
	EventFanJoined        = "FAN_JOINED"
	EventRecordingStarted = "RECORDING_STARTED"
	EventRecordingStopped = "RECORDING_STOPPED"
	EventMeetingCompleted = "MEETING_COMPLETED"
	EventCancelledNoShow  = "MEETING_CANCELLED_NO_SHOW_CREATOR"
	EventMeetingCancelled = "MEETING_CANCELLED"
	EventFanJoinStatus    = "FAN_JOIN_STATUS_AT_S"
	EventRefundIssued     = "REFUND_ISSUED"
	EventRefundFailed     = "REFUND_FAILED"
	EventPayoutIssued     = "PAYOUT_ISSUED"
	EventPayoutFailed     = "PAYOUT_FAILED"
)
