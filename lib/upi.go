package lib

import (
	"fmt"
	"net/url"
)

// PaymentURI builds the UPI deep link handed to the customer. The initiating
// order flow and the confirmation modal must produce the same URI, so both go
// through here. Amounts are paise; UPI wants rupees with two decimals.
func PaymentURI(upiId, payeeName string, amountPaise int64, currency, orderNumber string) string {
	params := url.Values{}
	params.Set("pa", upiId)
	params.Set("pn", payeeName)
	params.Set("am", fmt.Sprintf("%d.%02d", amountPaise/100, amountPaise%100))
	params.Set("cu", currency)
	params.Set("tn", "Order "+orderNumber)
	return "upi://pay?" + params.Encode()
}
