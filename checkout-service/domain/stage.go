package domain

// ActionStage is the step a checkout session has reached
type ActionStage string

const (
	StageDefault          ActionStage = "DEFAULT"
	StageSelectingChannel ActionStage = "SELECTING_CHANNEL"

	// Order creation. CreatingOrderSuccess is the "order created" stage.
	StageCreatingOrder        ActionStage = "CREATING_ORDER"
	StageErrorCreatingOrder   ActionStage = "ERROR_CREATING_ORDER"
	StageCreatingOrderSuccess ActionStage = "CREATING_ORDER_SUCCESS"
	StageCreatingOrderFailed  ActionStage = "CREATING_ORDER_FAILED"

	// Wallet payment request and polling
	StageCreatingWalletPaymentRequest      ActionStage = "CREATING_WALLET_PAYMENT_REQUEST"
	StageErrorCreatingWalletPaymentRequest ActionStage = "ERROR_CREATING_WALLET_PAYMENT_REQUEST"
	StageCreatedWalletPaymentRequest       ActionStage = "CREATED_WALLET_PAYMENT_REQUEST"
	StagePollingRequestStatus              ActionStage = "POLLING_REQUEST_STATUS"
	StageErrorPollingRequestStatus         ActionStage = "ERROR_POLLING_REQUEST_STATUS"
	StageWalletStatusPending               ActionStage = "WALLET_STATUS_PENDING"
	StageWalletStatusFailed                ActionStage = "WALLET_STATUS_FAILED"
	StageWalletStatusSuccess               ActionStage = "WALLET_STATUS_SUCCESS"

	// Payment link
	StageCreatingECODPaymentRequest      ActionStage = "CREATING_ECOD_PAYMENT_REQUEST"
	StageErrorCreatingECODPaymentRequest ActionStage = "ERROR_CREATING_ECOD_PAYMENT_REQUEST"
	StageSendingECODPaymentLink          ActionStage = "SENDING_ECOD_PAYMENT_LINK"
	StageErrorSendingECODPaymentLink     ActionStage = "ERROR_SENDING_ECOD_PAYMENT_LINK"

	StageSuccess      ActionStage = "SUCCESS"
	StageFatalFailure ActionStage = "FATAL_FAILURE"
)

var knownStages = map[ActionStage]struct{}{
	StageDefault: {}, StageSelectingChannel: {},
	StageCreatingOrder: {}, StageErrorCreatingOrder: {}, StageCreatingOrderSuccess: {}, StageCreatingOrderFailed: {},
	StageCreatingWalletPaymentRequest: {}, StageErrorCreatingWalletPaymentRequest: {}, StageCreatedWalletPaymentRequest: {},
	StagePollingRequestStatus: {}, StageErrorPollingRequestStatus: {},
	StageWalletStatusPending: {}, StageWalletStatusFailed: {}, StageWalletStatusSuccess: {},
	StageCreatingECODPaymentRequest: {}, StageErrorCreatingECODPaymentRequest: {},
	StageSendingECODPaymentLink: {}, StageErrorSendingECODPaymentLink: {},
	StageSuccess: {}, StageFatalFailure: {},
}

// RetryableErrorStages are the stages a caller is expected to retry from
var RetryableErrorStages = []ActionStage{
	StageErrorCreatingWalletPaymentRequest,
	StageErrorCreatingOrder,
	StageErrorPollingRequestStatus,
	StageCreatingOrderFailed,
	StageErrorCreatingECODPaymentRequest,
	StageErrorSendingECODPaymentLink,
}

func (s ActionStage) IsValid() bool {
	_, ok := knownStages[s]
	return ok
}

// IsTerminal reports whether the session cannot progress further
func (s ActionStage) IsTerminal() bool {
	switch s {
	case StageSuccess, StageFatalFailure, StageWalletStatusFailed:
		return true
	}
	return false
}

// IsRetryableError reports whether the stage records a failure the caller may retry
func (s ActionStage) IsRetryableError() bool {
	for _, r := range RetryableErrorStages {
		if s == r {
			return true
		}
	}
	return false
}

// IsPolling reports whether the session waits on an asynchronous payment request
func (s ActionStage) IsPolling() bool {
	switch s {
	case StageCreatedWalletPaymentRequest, StagePollingRequestStatus,
		StageWalletStatusPending, StageErrorPollingRequestStatus:
		return true
	}
	return false
}

func (s ActionStage) String() string {
	return string(s)
}
