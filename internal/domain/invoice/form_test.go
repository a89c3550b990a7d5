package invoice

import (
	"testing"
)

func validRaw() map[string]string {
	return map[string]string{
		FieldCustomerID: "cust-001",
		FieldAmount:     "10.5",
		FieldStatus:     StatusPending,
	}
}

// TestValidateForm_Valid tests a complete submission for both intents.
func TestValidateForm_Valid(t *testing.T) {
	for _, intent := range []Intent{IntentCreate, IntentUpdate} {
		fields, state, ok := ValidateForm(validRaw(), intent)
		if !ok {
			t.Fatalf("%s: expected valid, got state %+v", intent, state)
		}
		if state.HasErrors() || state.Message != "" {
			t.Errorf("%s: expected empty state, got %+v", intent, state)
		}
		if fields.CustomerID != "cust-001" {
			t.Errorf("%s: CustomerID = %q, want cust-001", intent, fields.CustomerID)
		}
		if fields.AmountCents() != 1050 {
			t.Errorf("%s: AmountCents = %d, want 1050", intent, fields.AmountCents())
		}
		if fields.Status != StatusPending {
			t.Errorf("%s: Status = %q, want pending", intent, fields.Status)
		}
	}
}

// TestValidateForm_Amount tests the amount rule against non-positive and malformed input.
func TestValidateForm_Amount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		valid  bool
	}{
		{"empty string", "", false},
		{"blank string", "   ", false},
		{"zero", "0", false},
		{"zero decimal", "0.00", false},
		{"negative", "-5", false},
		{"not a number", "ten", false},
		{"NaN", "NaN", false},
		{"infinity", "Inf", false},
		{"below half a cent", "0.004", false},
		{"above cap", "1000000000.01", false},
		{"one cent", "0.01", true},
		{"integer", "42", true},
		{"padded", " 7.25 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw[FieldAmount] = tt.amount
			_, state, ok := ValidateForm(raw, IntentCreate)
			if ok != tt.valid {
				t.Fatalf("ok = %v, want %v (state %+v)", ok, tt.valid, state)
			}
			if tt.valid {
				return
			}
			msgs := state.Errors[FieldAmount]
			if len(msgs) != 1 || msgs[0] != MsgAmountPositive {
				t.Errorf("amount errors = %v, want [%q]", msgs, MsgAmountPositive)
			}
			if len(state.Errors) != 1 {
				t.Errorf("expected only the amount field to fail, got %v", state.Errors)
			}
		})
	}
}

// TestValidateForm_MissingCustomer tests the customer rule regardless of other fields.
func TestValidateForm_MissingCustomer(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		status string
	}{
		{"other fields valid", "10", StatusPaid},
		{"amount invalid", "", StatusPaid},
		{"status invalid", "10", "overdue"},
		{"all invalid", "0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]string{
				FieldCustomerID: "  ",
				FieldAmount:     tt.amount,
				FieldStatus:     tt.status,
			}
			_, state, ok := ValidateForm(raw, IntentUpdate)
			if ok {
				t.Fatal("expected invalid")
			}
			msgs := state.Errors[FieldCustomerID]
			if len(msgs) != 1 || msgs[0] != MsgSelectCustomer {
				t.Errorf("customerId errors = %v, want [%q]", msgs, MsgSelectCustomer)
			}
		})
	}
}

// TestValidateForm_Status tests that only the two literals are accepted.
func TestValidateForm_Status(t *testing.T) {
	for _, status := range []string{"", "PAID", "overdue", " paid"} {
		raw := validRaw()
		raw[FieldStatus] = status
		_, state, ok := ValidateForm(raw, IntentCreate)
		if ok {
			t.Errorf("status %q: expected invalid", status)
			continue
		}
		if got := state.Errors[FieldStatus]; len(got) != 1 || got[0] != MsgSelectStatus {
			t.Errorf("status %q: errors = %v", status, got)
		}
	}
}

// TestValidateForm_Message tests the summary message names the intent.
func TestValidateForm_Message(t *testing.T) {
	_, state, _ := ValidateForm(map[string]string{}, IntentCreate)
	if state.Message != "Missing Fields. Failed to Create Invoice." {
		t.Errorf("create message = %q", state.Message)
	}
	if len(state.Errors) != 3 {
		t.Errorf("expected 3 failing fields, got %v", state.Errors)
	}

	_, state, _ = ValidateForm(map[string]string{}, IntentUpdate)
	if state.Message != "Missing Fields. Failed to Update Invoice." {
		t.Errorf("update message = %q", state.Message)
	}
}

// TestValidateForm_IgnoresIdentityFields tests that id and date are never read from input.
func TestValidateForm_IgnoresIdentityFields(t *testing.T) {
	raw := validRaw()
	raw["id"] = "attacker-chosen"
	raw["date"] = "1999-01-01"
	fields, _, ok := ValidateForm(raw, IntentCreate)
	if !ok {
		t.Fatal("expected valid")
	}
	if fields != (Fields{CustomerID: "cust-001", Amount: 10.5, Status: StatusPending}) {
		t.Errorf("unexpected fields %+v", fields)
	}
}

// TestValidateForm_DeleteIntent tests that delete submissions are not validated as forms.
func TestValidateForm_DeleteIntent(t *testing.T) {
	_, state, ok := ValidateForm(validRaw(), IntentDelete)
	if ok {
		t.Fatal("expected delete intent to be rejected")
	}
	if state.HasErrors() {
		t.Errorf("expected no field errors, got %v", state.Errors)
	}
}

// TestValidateForm_Deterministic tests repeated calls yield the same result.
func TestValidateForm_Deterministic(t *testing.T) {
	raw := map[string]string{FieldAmount: "abc"}
	_, first, _ := ValidateForm(raw, IntentCreate)
	_, second, _ := ValidateForm(raw, IntentCreate)
	if first.Message != second.Message || len(first.Errors) != len(second.Errors) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}
