package domain

import "time"

// FirstEffect is the effect a fresh session of the channel starts with
func FirstEffect(channel Channel) Effect {
	if channel == ChannelPaymentLink {
		return EffectCreateLink
	}
	return EffectCreateOrder
}

// Enter returns the state to checkpoint before effect is performed. A crash
// while the call is in flight resumes from this state.
func Enter(channel Channel, state RetryState, effect Effect) RetryState {
	switch effect {
	case EffectCreateOrder:
		return state.WithStage(StageCreatingOrder).WithOrderInitiated(true)
	case EffectSubmitTransfer:
		if channel == ChannelWalletTransfer {
			return state.WithStage(StageCreatingWalletPaymentRequest).WithOrderInitiated(true)
		}
		return state.WithStage(StageCreatingOrder).WithOrderInitiated(true)
	case EffectSchedulePoll:
		return state.WithStage(StagePollingRequestStatus)
	case EffectCreateLink:
		return state.WithStage(StageCreatingECODPaymentRequest).WithoutLink()
	}
	return state
}

// Transition applies the outcome of effect and returns the next state and the
// effect to run next. It never performs I/O.
func Transition(channel Channel, state RetryState, effect Effect, outcome Outcome) (RetryState, Effect) {
	switch effect {
	case EffectCreateOrder:
		return onOrderCreated(channel, state, outcome)
	case EffectSubmitTransfer:
		if channel == ChannelWalletTransfer {
			return onWalletTransfer(state, outcome)
		}
		return onCreditTransfer(state, outcome)
	case EffectPollStatus:
		return onPoll(state, outcome)
	case EffectFinalizeOrder:
		return onFinalize(state, outcome)
	case EffectCreateLink:
		return onLinkCreated(state, outcome)
	case EffectSendLink:
		return onLinkSent(state, outcome)
	case EffectReconcileOrder:
		return onOrderHistory(channel, state, outcome)
	case EffectReconcileTransaction:
		return onTransactionHistory(channel, state, outcome)
	}
	return state, EffectNone
}

func onOrderCreated(channel Channel, state RetryState, outcome Outcome) (RetryState, Effect) {
	switch outcome.Kind {
	case OutcomeAccepted:
		next := state.WithRequestData(outcome.Request).
			WithOrderInitiated(true).
			WithPendingReconcile(false).
			WithoutError()
		if channel == ChannelWalletTransfer {
			return next.WithStage(StageCreatingOrderSuccess), EffectSubmitTransfer
		}
		return next.WithStage(StageCreatingOrder), EffectSubmitTransfer
	case OutcomeRejected, OutcomeQueued:
		return state.WithStage(StageErrorCreatingOrder).
			WithOrderInitiated(false).
			WithFailure(outcome.Err), EffectReportError
	}
	return state.WithStage(StageErrorCreatingOrder).
		WithOrderInitiated(true).
		WithPendingReconcile(true).
		WithFailure(outcome.Err), EffectReconcileOrder
}

func onWalletTransfer(state RetryState, outcome Outcome) (RetryState, Effect) {
	switch outcome.Kind {
	case OutcomeAccepted:
		return state.WithStage(StageCreatedWalletPaymentRequest).
			WithRequestData(outcome.Request).
			WithPendingReconcile(false).
			WithoutError(), EffectSchedulePoll
	case OutcomeQueued:
		return state.WithStage(StageErrorCreatingWalletPaymentRequest).
			WithFailure(outcome.Err), EffectAwaitQueue
	case OutcomeRejected:
		return state.WithStage(StageErrorCreatingWalletPaymentRequest).
			WithPendingReconcile(false).
			WithFailure(outcome.Err), EffectReportError
	}
	return state.WithStage(StageErrorCreatingWalletPaymentRequest).
		WithPendingReconcile(true).
		WithFailure(outcome.Err), EffectReconcileTransaction
}

func onCreditTransfer(state RetryState, outcome Outcome) (RetryState, Effect) {
	switch outcome.Kind {
	case OutcomeAccepted:
		return state.WithStage(StageCreatingOrderSuccess).
			WithRequestData(outcome.Request).
			WithPendingReconcile(false).
			WithoutError(), EffectComplete
	case OutcomeRejected, OutcomeQueued:
		return state.WithStage(StageCreatingOrderFailed).
			WithPendingReconcile(false).
			WithFailure(outcome.Err), EffectReportError
	}
	return state.WithStage(StageCreatingOrderFailed).
		WithPendingReconcile(true).
		WithFailure(outcome.Err), EffectReconcileOrder
}

func onPoll(state RetryState, outcome Outcome) (RetryState, Effect) {
	switch outcome.Kind {
	case OutcomePending:
		return state.WithStage(StageWalletStatusPending).WithoutError(), EffectSchedulePoll
	case OutcomeSettled:
		return state.WithStage(StageWalletStatusSuccess).WithoutError(), EffectFinalizeOrder
	case OutcomeDeclined:
		return state.WithStage(StageWalletStatusFailed).WithFailure(outcome.Err), EffectFail
	}
	return state.WithStage(StageErrorPollingRequestStatus).WithFailure(outcome.Err), EffectReportError
}

func onFinalize(state RetryState, outcome Outcome) (RetryState, Effect) {
	if outcome.Kind == OutcomeAccepted {
		return state.WithoutError(), EffectComplete
	}
	return state.WithStage(StageWalletStatusSuccess).WithFailure(outcome.Err), EffectReportError
}

func onLinkCreated(state RetryState, outcome Outcome) (RetryState, Effect) {
	switch outcome.Kind {
	case OutcomeAccepted:
		return state.WithStage(StageCreatingECODPaymentRequest).
			WithRequestData(outcome.Request).
			WithOrderInitiated(true).
			WithPendingReconcile(false).
			WithoutError(), EffectSendLink
	case OutcomeRejected, OutcomeQueued:
		return state.WithStage(StageErrorCreatingECODPaymentRequest).
			WithOrderInitiated(false).
			WithFailure(outcome.Err), EffectReportError
	}
	return state.WithStage(StageErrorCreatingECODPaymentRequest).
		WithOrderInitiated(true).
		WithPendingReconcile(true).
		WithFailure(outcome.Err), EffectReconcileOrder
}

func onLinkSent(state RetryState, outcome Outcome) (RetryState, Effect) {
	if outcome.Kind == OutcomeAccepted {
		return state.WithStage(StageSendingECODPaymentLink).WithoutError(), EffectComplete
	}
	return state.WithStage(StageErrorSendingECODPaymentLink).WithFailure(outcome.Err), EffectReportError
}

// onOrderHistory settles an ambiguous order creation or credit transfer by
// what the order history shows
func onOrderHistory(channel Channel, state RetryState, outcome Outcome) (RetryState, Effect) {
	if outcome.Kind == OutcomeIndeterminate {
		return state.WithFailure(outcome.Err), EffectReportError
	}

	switch state.Stage {
	case StageErrorCreatingOrder:
		switch outcome.Kind {
		case OutcomeSettled:
			return state.WithRequestData(outcome.Request).WithPendingReconcile(false), EffectComplete
		case OutcomePending, OutcomeLinkPending:
			// the order landed unpaid, carry on with its payment
			next := state.WithRequestData(outcome.Request).
				WithOrderInitiated(true).
				WithPendingReconcile(false)
			if channel == ChannelWalletTransfer {
				return next.WithStage(StageCreatingOrderSuccess), EffectSubmitTransfer
			}
			return next.WithStage(StageCreatingOrder), EffectSubmitTransfer
		}
		return state.WithOrderInitiated(false).WithPendingReconcile(false), EffectCreateOrder

	case StageCreatingOrderFailed:
		if outcome.Kind == OutcomeSettled {
			return state.WithStage(StageCreatingOrderSuccess).WithPendingReconcile(false), EffectComplete
		}
		return state.WithPendingReconcile(false), EffectSubmitTransfer

	case StageErrorCreatingECODPaymentRequest, StageCreatingECODPaymentRequest:
		switch outcome.Kind {
		case OutcomeSettled:
			return state.WithRequestData(outcome.Request).WithPendingReconcile(false), EffectComplete
		case OutcomeLinkPending:
			return state.WithStage(StageCreatingECODPaymentRequest).
				WithRequestData(outcome.Request).
				WithOrderInitiated(true).
				WithPendingReconcile(false), EffectSendLink
		}
		return state.WithOrderInitiated(false).WithPendingReconcile(false), EffectCreateLink
	}
	return state, EffectReportError
}

// onTransactionHistory settles an ambiguous transfer by what the transaction
// history shows
func onTransactionHistory(channel Channel, state RetryState, outcome Outcome) (RetryState, Effect) {
	if outcome.Kind == OutcomeIndeterminate {
		return state.WithFailure(outcome.Err), EffectReportError
	}

	switch state.Stage {
	case StageCreatingOrder, StageCreatingOrderSuccess:
		switch outcome.Kind {
		case OutcomeSettled:
			return state.WithRequestData(outcome.Request), EffectComplete
		case OutcomeDeclined:
			return state, EffectFail
		}
		if channel == ChannelWalletTransfer && state.Stage == StageCreatingOrderSuccess && outcome.Kind == OutcomeNotFound {
			// the wallet transfer is always checkpointed before it is sent
			return state, EffectSubmitTransfer
		}
		return state, EffectAbandon

	case StageErrorCreatingWalletPaymentRequest, StageCreatingWalletPaymentRequest:
		switch outcome.Kind {
		case OutcomeSettled:
			return state.WithStage(StageWalletStatusSuccess).
				WithRequestData(outcome.Request).
				WithPendingReconcile(false).
				WithoutError(), EffectFinalizeOrder
		case OutcomeDeclined:
			return state.WithStage(StageWalletStatusFailed).WithPendingReconcile(false), EffectFail
		case OutcomePending:
			if outcome.Request == nil || len(outcome.Request.RequestIDs) == 0 {
				return state.WithStage(StageErrorCreatingWalletPaymentRequest), EffectReportError
			}
			return state.WithStage(StageCreatedWalletPaymentRequest).
				WithRequestData(outcome.Request).
				WithPendingReconcile(false).
				WithoutError(), EffectSchedulePoll
		}
		return state.WithStage(StageErrorCreatingWalletPaymentRequest).WithPendingReconcile(false), EffectSubmitTransfer
	}
	return state, EffectReportError
}

// ResumeEffect decides what a restored session does first, keyed by the stage
// it was checkpointed at
func ResumeEffect(channel Channel, state RetryState) Effect {
	switch state.Stage {
	case StageDefault, StageSelectingChannel:
		return FirstEffect(channel)

	case StageErrorCreatingWalletPaymentRequest:
		if state.PendingReconcile {
			return EffectReconcileTransaction
		}
		return EffectSubmitTransfer
	case StageCreatingWalletPaymentRequest:
		return EffectReconcileTransaction

	case StageErrorCreatingOrder, StageCreatingOrderFailed:
		return EffectReconcileOrder
	case StageCreatingOrder, StageCreatingOrderSuccess:
		return EffectReconcileTransaction

	case StageCreatedWalletPaymentRequest, StagePollingRequestStatus,
		StageWalletStatusPending, StageErrorPollingRequestStatus:
		return EffectSchedulePoll
	case StageWalletStatusSuccess:
		return EffectFinalizeOrder

	case StageErrorCreatingECODPaymentRequest:
		return EffectReconcileOrder
	case StageCreatingECODPaymentRequest:
		if state.RequestData().HasLink() {
			return EffectSendLink
		}
		return EffectReconcileOrder
	case StageErrorSendingECODPaymentLink:
		return EffectCreateLink

	case StageSendingECODPaymentLink, StageSuccess:
		return EffectComplete
	case StageWalletStatusFailed, StageFatalFailure:
		return EffectFail
	}
	return EffectReportError
}

// ShouldAbandon reports whether a restored session has been stuck mid-flight
// for too long. Retryable error stages are never abandoned.
func ShouldAbandon(state RetryState, savedAt, now time.Time, after time.Duration) bool {
	if !state.OrderInitiated || state.Stage.IsTerminal() || state.Stage.IsRetryableError() {
		return false
	}
	if savedAt.IsZero() {
		return false
	}
	return now.Sub(savedAt) >= after
}

// CanGoBack reports whether the caller may leave the checkout and pick again
func CanGoBack(state RetryState) bool {
	return !state.OrderInitiated
}
