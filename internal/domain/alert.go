package domain

// Action is a trading signal direction from the alerting platform.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Valid reports whether the action is one of the accepted signal values.
func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionHold:
		return true
	default:
		return false
	}
}

// Alert is an inbound TradingView webhook payload. It is untrusted until
// Validate has passed. The optional numeric indicators use pointers so that
// an absent value is distinguishable from a literal zero.
type Alert struct {
	Secret    string   `json:"secret"`
	Symbol    string   `json:"symbol"`
	Action    Action   `json:"action"`
	Price     *float64 `json:"price"`
	RSI       *float64 `json:"rsi,omitempty"`
	MACD      *float64 `json:"macd,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Validate checks the alert shape: required fields present and the action
// inside the accepted set. An alert either passes completely or is rejected
// completely; callers must not use a partially valid alert.
func (a *Alert) Validate() error {
	if a.Secret == "" {
		return &FieldError{Field: "secret", Err: ErrFieldRequired}
	}
	if a.Symbol == "" {
		return &FieldError{Field: "symbol", Err: ErrFieldRequired}
	}
	if a.Action == "" {
		return &FieldError{Field: "action", Err: ErrFieldRequired}
	}
	if !a.Action.Valid() {
		return &FieldError{Field: "action", Err: ErrInvalidAction}
	}
	if a.Price == nil {
		return &FieldError{Field: "price", Err: ErrFieldRequired}
	}
	return nil
}

// PriceValue returns the price, or zero when it is absent. Validated alerts
// always carry a price; the zero fallback only keeps the formatter total.
func (a *Alert) PriceValue() float64 {
	if a.Price == nil {
		return 0
	}
	return *a.Price
}
