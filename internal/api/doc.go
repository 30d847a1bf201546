// Package api handles incoming HTTP requests, request validation and
// response formatting for the notecards backend. Handlers translate HTTP
// concerns into calls on stores, the flashcard generator and the payment
// provider.
package api
