package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	itemReceiptNumber = "MpesaReceiptNumber"
	itemAmount        = "Amount"
)

// CallbackEnvelope is the defensively extracted content of Body.stkCallback.
// Every field is optional; Present is false when stkCallback is missing or not an object.
type CallbackEnvelope struct {
	Present           bool
	CheckoutRequestID string
	MerchantRequestID string
	ResultCode        *int
	ResultDesc        *string
	ReceiptNumber     string
	AmountPaid        *decimal.Decimal
}

// ParseCallbackEnvelope never fails: malformed input yields an envelope with Present=false.
func ParseCallbackEnvelope(raw []byte) CallbackEnvelope {
	var env CallbackEnvelope

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return env
	}

	body, ok := payload["Body"].(map[string]any)
	if !ok {
		return env
	}
	stk, ok := body["stkCallback"].(map[string]any)
	if !ok {
		return env
	}
	env.Present = true

	env.CheckoutRequestID = scalarString(stk["CheckoutRequestID"])
	env.MerchantRequestID = scalarString(stk["MerchantRequestID"])
	env.ResultCode = integerValue(stk["ResultCode"])
	if desc, ok := stk["ResultDesc"].(string); ok {
		env.ResultDesc = &desc
	}

	meta, ok := stk["CallbackMetadata"].(map[string]any)
	if !ok {
		return env
	}
	items, ok := meta["Item"].([]any)
	if !ok {
		return env
	}
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name, _ := item["Name"].(string)
		switch name {
		case itemReceiptNumber:
			env.ReceiptNumber = scalarString(item["Value"])
		case itemAmount:
			env.AmountPaid = decimalValue(item["Value"])
		}
	}

	return env
}

// IsSuccess reports a numeric zero result code.
func (e CallbackEnvelope) IsSuccess() bool {
	return e.ResultCode != nil && *e.ResultCode == ResultCodeSuccess
}

// HasProofOfPayment is true only when both the receipt and the paid amount are present.
func (e CallbackEnvelope) HasProofOfPayment() bool {
	return e.ReceiptNumber != "" && e.AmountPaid != nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "1"
		}
	}
	return ""
}

func decimalValue(v any) *decimal.Decimal {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

var (
	minResultCode = decimal.NewFromInt(math.MinInt32)
	maxResultCode = decimal.NewFromInt(math.MaxInt32)
)

// integerValue accepts integral numbers and numeric strings that fit the result_code column.
// Fractions and out-of-range values are not result codes.
func integerValue(v any) *int {
	d := decimalValue(v)
	if d == nil || !d.IsInteger() {
		return nil
	}
	if d.LessThan(minResultCode) || d.GreaterThan(maxResultCode) {
		return nil
	}
	n := int(d.IntPart())
	return &n
}
