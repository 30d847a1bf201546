// Package domain defines the core entities of the notecards system: flashcard
// drafts produced by generation, persisted flashcard records, and the payment
// plan, request and checkout types used by the payment flow. It holds only
// data and validation rules and has no knowledge of transport or storage.
package domain
