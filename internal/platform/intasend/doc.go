// Package intasend is a minimal client for the IntaSend collection API. It
// only starts M-Pesa STK push charges; invoice status polling and webhooks
// are not supported.
package intasend
