package paymentdto

type InitiatePaymentInput struct {
	UserID  int64
	OrderID int64
	Phone   string
}

// CallbackInput is one delivery of the gateway's STK callback.
type CallbackInput struct {
	QuerySecret  string
	HeaderSecret string
	Payload      []byte
}
