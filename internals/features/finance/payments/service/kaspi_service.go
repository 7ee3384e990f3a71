package service

import (
	"fmt"
	"net/url"
)

const kaspiPayBaseURL = "https://kaspi.kz/pay"

// BuildKaspiPayURL composes the hosted Kaspi Pay checkout link. Kaspi has no
// server-side session to create; the order id in the link ties the later
// webhook back to our payment row.
func BuildKaspiPayURL(amount int, orderID, subject, date, customerName string) string {
	q := url.Values{}
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("order_id", orderID)
	q.Set("description", fmt.Sprintf("Оплата урока %s - %s", subject, date))
	q.Set("customer_name", customerName)
	return kaspiPayBaseURL + "?" + q.Encode()
}
