package domain

// Effect is the next thing the orchestrator has to do for a session
type Effect string

const (
	EffectNone                 Effect = ""
	EffectCreateOrder          Effect = "create_order"
	EffectSubmitTransfer       Effect = "submit_transfer"
	EffectSchedulePoll         Effect = "schedule_poll"
	EffectPollStatus           Effect = "poll_status"
	EffectFinalizeOrder        Effect = "finalize_order"
	EffectCreateLink           Effect = "create_link"
	EffectSendLink             Effect = "send_link"
	EffectReconcileOrder       Effect = "reconcile_order"
	EffectReconcileTransaction Effect = "reconcile_transaction"
	EffectComplete             Effect = "complete"
	EffectFail                 Effect = "fail"
	EffectAbandon              Effect = "abandon"
	EffectAwaitQueue           Effect = "await_queue"
	EffectReportError          Effect = "report_error"
)

// IsCall reports whether the effect is a backend call
func (e Effect) IsCall() bool {
	switch e {
	case EffectCreateOrder, EffectSubmitTransfer, EffectPollStatus, EffectFinalizeOrder,
		EffectCreateLink, EffectSendLink, EffectReconcileOrder, EffectReconcileTransaction:
		return true
	}
	return false
}

// IsSubmission reports whether the call changes backend state. A submission is
// issued at most once per run.
func (e Effect) IsSubmission() bool {
	switch e {
	case EffectCreateOrder, EffectSubmitTransfer, EffectFinalizeOrder, EffectCreateLink, EffectSendLink:
		return true
	}
	return false
}

// IsTerminal reports whether the effect ends the session
func (e Effect) IsTerminal() bool {
	return e == EffectComplete || e == EffectFail || e == EffectAbandon
}

func (e Effect) String() string {
	if e == EffectNone {
		return "none"
	}
	return string(e)
}

// OutcomeKind is the classified result of a backend call
type OutcomeKind string

const (
	OutcomeAccepted      OutcomeKind = "accepted"
	OutcomeRejected      OutcomeKind = "rejected"
	OutcomeIndeterminate OutcomeKind = "indeterminate"
	OutcomeQueued        OutcomeKind = "queued"
	OutcomePending       OutcomeKind = "pending"
	OutcomeSettled       OutcomeKind = "settled"
	OutcomeDeclined      OutcomeKind = "declined"
	OutcomeLinkPending   OutcomeKind = "link_pending"
	OutcomeNotFound      OutcomeKind = "not_found"
)

// Outcome is what a call produced: its kind, any identifiers it handed out
// and the error when it failed
type Outcome struct {
	Kind    OutcomeKind
	Request *RequestData
	Err     *ErrorPayload
}

func Accepted(data *RequestData) Outcome {
	return Outcome{Kind: OutcomeAccepted, Request: data}
}

func Found(kind OutcomeKind, data *RequestData) Outcome {
	return Outcome{Kind: kind, Request: data}
}

// OutcomeOf classifies a failed call. A transient failure never reached the
// backend and is reported as rejected.
func OutcomeOf(err error) Outcome {
	payload := PayloadOf(err)
	switch KindOf(err) {
	case ErrorKindRejected, ErrorKindTransient, ErrorKindFatal:
		if payload.Code == CodePendingTransactionQueued {
			return Outcome{Kind: OutcomeQueued, Err: payload}
		}
		return Outcome{Kind: OutcomeRejected, Err: payload}
	}
	return Outcome{Kind: OutcomeIndeterminate, Err: payload}
}
