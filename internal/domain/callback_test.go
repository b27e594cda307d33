package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

const successPayload = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 1000.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

func TestParseCallbackEnvelopeSuccess(t *testing.T) {
	env := ParseCallbackEnvelope([]byte(successPayload))

	if !env.Present {
		t.Fatal("expected envelope to be present")
	}
	if env.CheckoutRequestID != "ws_CO_191220191020363925" {
		t.Errorf("checkout id = %q", env.CheckoutRequestID)
	}
	if env.MerchantRequestID != "29115-34620561-1" {
		t.Errorf("merchant id = %q", env.MerchantRequestID)
	}
	if !env.IsSuccess() {
		t.Error("expected success result code")
	}
	if env.ResultDesc == nil || *env.ResultDesc != "The service request is processed successfully." {
		t.Errorf("result desc = %v", env.ResultDesc)
	}
	if env.ReceiptNumber != "NLJ7RT61SV" {
		t.Errorf("receipt = %q", env.ReceiptNumber)
	}
	if env.AmountPaid == nil || !env.AmountPaid.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("amount = %v", env.AmountPaid)
	}
	if !env.HasProofOfPayment() {
		t.Error("expected proof of payment")
	}
}

func TestParseCallbackEnvelopeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ``},
		{"not json", `<xml/>`},
		{"array", `[1,2,3]`},
		{"no body", `{"foo":"bar"}`},
		{"body not object", `{"Body":"x"}`},
		{"stk missing", `{"Body":{}}`},
		{"stk not object", `{"Body":{"stkCallback":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ParseCallbackEnvelope([]byte(tt.raw))
			if env.Present {
				t.Fatal("expected envelope to be absent")
			}
			if env.IsSuccess() {
				t.Fatal("absent envelope must not be success")
			}
		})
	}
}

func TestParseCallbackEnvelopeResultCodes(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    *int
		success bool
	}{
		{"zero", `0`, intPtr(0), true},
		{"numeric string zero", `"0"`, intPtr(0), true},
		{"cancelled", `1032`, intPtr(1032), false},
		{"fraction", `0.5`, nil, false},
		{"negative", `-1`, intPtr(-1), false},
		{"int32 max", `2147483647`, intPtr(2147483647), false},
		{"above int32", `3000000000`, nil, false},
		{"below int32", `-2147483649`, nil, false},
		{"wraps to zero in int64", `18446744073709551616`, nil, false},
		{"wraps to zero as string", `"18446744073709551616"`, nil, false},
		{"two to the 65th", `36893488147419103232`, nil, false},
		{"text", `"ok"`, nil, false},
		{"null", `null`, nil, false},
		{"object", `{}`, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"Body":{"stkCallback":{"CheckoutRequestID":"c","ResultCode":` + tt.code + `}}}`
			env := ParseCallbackEnvelope([]byte(raw))
			if env.IsSuccess() != tt.success {
				t.Errorf("IsSuccess = %v, want %v", env.IsSuccess(), tt.success)
			}
			switch {
			case tt.want == nil && env.ResultCode != nil:
				t.Errorf("ResultCode = %d, want nil", *env.ResultCode)
			case tt.want != nil && (env.ResultCode == nil || *env.ResultCode != *tt.want):
				t.Errorf("ResultCode = %v, want %d", env.ResultCode, *tt.want)
			}
		})
	}
}

func TestParseCallbackEnvelopeMissingProof(t *testing.T) {
	noReceipt := `{"Body":{"stkCallback":{"CheckoutRequestID":"c","ResultCode":0,
		"CallbackMetadata":{"Item":[{"Name":"Amount","Value":10}]}}}}`
	env := ParseCallbackEnvelope([]byte(noReceipt))
	if env.HasProofOfPayment() {
		t.Error("missing receipt must not count as proof")
	}

	noAmount := `{"Body":{"stkCallback":{"CheckoutRequestID":"c","ResultCode":0,
		"CallbackMetadata":{"Item":[{"Name":"MpesaReceiptNumber","Value":"R1"},{"Name":"Amount","Value":"abc"}]}}}}`
	env = ParseCallbackEnvelope([]byte(noAmount))
	if env.AmountPaid != nil {
		t.Errorf("non-numeric amount should be absent, got %v", env.AmountPaid)
	}
	if env.HasProofOfPayment() {
		t.Error("missing amount must not count as proof")
	}

	badItems := `{"Body":{"stkCallback":{"CheckoutRequestID":"c","ResultCode":0,
		"CallbackMetadata":{"Item":"nope"}}}}`
	env = ParseCallbackEnvelope([]byte(badItems))
	if !env.Present || env.HasProofOfPayment() {
		t.Error("malformed items should be skipped without proof")
	}
}

func TestParseCallbackEnvelopeStringAmount(t *testing.T) {
	raw := `{"Body":{"stkCallback":{"ResultCode":0,"CallbackMetadata":{"Item":[
		{"Name":"Amount","Value":"999.995"},{"Name":"MpesaReceiptNumber","Value":"R2"}]}}}}`
	env := ParseCallbackEnvelope([]byte(raw))
	want := decimal.RequireFromString("999.995")
	if env.AmountPaid == nil || !env.AmountPaid.Equal(want) {
		t.Errorf("amount = %v, want %s", env.AmountPaid, want)
	}
}

func intPtr(v int) *int { return &v }
