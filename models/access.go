package models

// AccessPayload is returned once a content item is unlocked.
type AccessPayload struct {
	Type ContentType `json:"type"`
	Data string      `json:"data"`
}

// PaymentRequired tells the caller how to pay for a locked item.
type PaymentRequired struct {
	Error        string `json:"error"`
	PayToAddress string `json:"payToAddress"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
}

// GrantRequest carries the payment proof redeemed for an access grant.
type GrantRequest struct {
	Proof string `json:"proof" form:"proof"`
}

// Network describes where payments can be sent.
type Network struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Merchant string `json:"merchant,omitempty"`
}
