package invoice

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Submitted form field names.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Field error messages rendered next to the offending input.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

var fieldMessages = map[string]string{
	FieldCustomerID: MsgSelectCustomer,
	FieldAmount:     MsgAmountPositive,
	FieldStatus:     MsgSelectStatus,
}

// FormState is the transient result of one submission.
// Errors only holds fields that failed validation.
type FormState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// HasErrors reports whether any field failed validation.
func (s FormState) HasErrors() bool {
	return len(s.Errors) > 0
}

// Fields is a validated, normalized invoice submission.
// ID and Date are never taken from input.
type Fields struct {
	CustomerID string  `form:"customerId" validate:"required"`
	Amount     float64 `form:"amount" validate:"gt=0,lte=1000000000,cents"`
	Status     string  `form:"status" validate:"oneof=pending paid"`
}

// AmountCents converts the normalized amount to minor units.
func (f Fields) AmountCents() int64 {
	return ToCents(f.Amount)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})
	// Amounts below half a cent would round to a zero-cent invoice.
	_ = v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		return ToCents(fl.Field().Float()) > 0
	})
	return v
}

// ValidateForm turns a raw submission into normalized Fields.
// PRE: intent is IntentCreate or IntentUpdate
// POST: ok is true and state is empty, or ok is false and state names every failing field
// INVARIANT: no I/O; the same input always yields the same result
func ValidateForm(raw map[string]string, intent Intent) (fields Fields, state FormState, ok bool) {
	if intent != IntentCreate && intent != IntentUpdate {
		return Fields{}, FormState{Message: "Unsupported action. Failed to " + intent.Verb() + " Invoice."}, false
	}

	fields = Fields{
		CustomerID: strings.TrimSpace(raw[FieldCustomerID]),
		Amount:     parseAmount(raw[FieldAmount]),
		Status:     raw[FieldStatus],
	}

	err := validate.Struct(fields)
	if err == nil {
		return fields, FormState{}, true
	}

	state = FormState{
		Errors:  make(map[string][]string),
		Message: "Missing Fields. Failed to " + intent.Verb() + " Invoice.",
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Fields{}, state, false
	}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := state.Errors[name]; seen {
			continue
		}
		state.Errors[name] = []string{fieldMessages[name]}
	}
	return Fields{}, state, false
}

// parseAmount coerces the submitted decimal string.
// Blank, non-numeric and non-finite input yields 0 so the gt=0 rule rejects it.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
