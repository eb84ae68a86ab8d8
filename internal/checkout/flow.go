package checkout

import (
	"regexp"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

var (
	phonePattern   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

var paymentMethods = map[string]struct{}{
	"cod":  {},
	"upi":  {},
	"card": {},
}

// Flow is the checkout wizard: address, delivery slot, payment method,
// then a review step that gates order submission.
var Flow = wizard.Definition{
	Name: "checkout",
	Steps: []wizard.Step{
		{
			Name:     "address",
			Required: []string{"delivery_name", "delivery_phone", "address_line", "city", "pincode"},
			Validate: func(fields map[string]string) error {
				if !phonePattern.MatchString(fields["delivery_phone"]) {
					return pkgerrors.New(pkgerrors.CodeValidation, "delivery phone must be ten digits")
				}
				if !pincodePattern.MatchString(fields["pincode"]) {
					return pkgerrors.New(pkgerrors.CodeValidation, "pincode must be six digits")
				}
				return nil
			},
		},
		{
			Name:     "delivery",
			Required: []string{"delivery_slot"},
		},
		{
			Name:     "payment",
			Required: []string{"payment_method"},
			Validate: func(fields map[string]string) error {
				if _, ok := paymentMethods[fields["payment_method"]]; !ok {
					return pkgerrors.New(pkgerrors.CodeValidation, "payment method must be cod, upi, or card")
				}
				return nil
			},
		},
		{
			Name: "review",
		},
	},
}
