package domain

// RetryState is the persisted progress of a checkout. It is a value: every
// With* method returns a modified copy and leaves the receiver untouched.
type RetryState struct {
	Stage               ActionStage         `json:"action_stage"`
	OrderInitiated      bool                `json:"order_initiated"`
	PendingReconcile    bool                `json:"pending_reconcile,omitempty"`
	ResumedTransferData *TransferRequest    `json:"resumed_transfer_data,omitempty"`
	ResumedPaymentData  *ResumedPaymentData `json:"resumed_payment_data,omitempty"`
	TrialsCount         int                 `json:"trials_count"`
	BackTrialCount      int                 `json:"back_trial_count"`
	LastError           *ErrorPayload       `json:"last_error,omitempty"`
}

// ResumedPaymentData holds the backend identifiers and the order payload
type ResumedPaymentData struct {
	RequestData *RequestData  `json:"request_data,omitempty"`
	Data        *OrderRequest `json:"data,omitempty"`
}

func (p *ResumedPaymentData) clone() *ResumedPaymentData {
	if p == nil {
		return nil
	}
	return &ResumedPaymentData{
		RequestData: p.RequestData.Clone(),
		Data:        p.Data.Clone(),
	}
}

func NewRetryState() RetryState {
	return RetryState{Stage: StageDefault}
}

func (s RetryState) clone() RetryState {
	c := s
	c.ResumedTransferData = s.ResumedTransferData.Clone()
	c.ResumedPaymentData = s.ResumedPaymentData.clone()
	if s.LastError != nil {
		e := *s.LastError
		c.LastError = &e
	}
	return c
}

func (s RetryState) WithStage(stage ActionStage) RetryState {
	c := s.clone()
	c.Stage = stage
	return c
}

func (s RetryState) WithOrderInitiated(initiated bool) RetryState {
	c := s.clone()
	c.OrderInitiated = initiated
	return c
}

func (s RetryState) WithPendingReconcile(pending bool) RetryState {
	c := s.clone()
	c.PendingReconcile = pending
	return c
}

func (s RetryState) WithTransfer(t *TransferRequest) RetryState {
	c := s.clone()
	c.ResumedTransferData = t.Clone()
	return c
}

// WithOrderData stores the order payload, keeping any request data
func (s RetryState) WithOrderData(data *OrderRequest) RetryState {
	c := s.clone()
	if c.ResumedPaymentData == nil {
		c.ResumedPaymentData = &ResumedPaymentData{}
	}
	c.ResumedPaymentData.Data = data.Clone()
	return c
}

// WithRequestData merges identifiers into the stored request data
func (s RetryState) WithRequestData(data *RequestData) RetryState {
	c := s.clone()
	if c.ResumedPaymentData == nil {
		c.ResumedPaymentData = &ResumedPaymentData{}
	}
	c.ResumedPaymentData.RequestData = c.ResumedPaymentData.RequestData.Merge(data)
	return c
}

// WithoutLink drops a previously handed out payment link
func (s RetryState) WithoutLink() RetryState {
	c := s.clone()
	if c.ResumedPaymentData != nil && c.ResumedPaymentData.RequestData != nil {
		c.ResumedPaymentData.RequestData.LinkID = ""
		c.ResumedPaymentData.RequestData.ShortURL = ""
	}
	return c
}

// WithFailure counts a failed attempt and records its error
func (s RetryState) WithFailure(err *ErrorPayload) RetryState {
	c := s.clone()
	c.TrialsCount++
	if err != nil {
		e := *err
		c.LastError = &e
	}
	return c
}

func (s RetryState) WithoutError() RetryState {
	c := s.clone()
	c.LastError = nil
	return c
}

func (s RetryState) WithBackTrial() RetryState {
	c := s.clone()
	c.BackTrialCount++
	return c
}

func (s RetryState) RequestData() *RequestData {
	if s.ResumedPaymentData == nil {
		return nil
	}
	return s.ResumedPaymentData.RequestData
}

func (s RetryState) OrderData() *OrderRequest {
	if s.ResumedPaymentData == nil {
		return nil
	}
	return s.ResumedPaymentData.Data
}

func (s RetryState) OrderID() string {
	if rd := s.RequestData(); rd != nil {
		return rd.OrderID
	}
	return ""
}

func (s RetryState) RequestIDs() []string {
	if rd := s.RequestData(); rd != nil {
		return rd.RequestIDs
	}
	return nil
}
