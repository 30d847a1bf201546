// Package client is an HTTP client for the notecards backend API. A single
// Client covers the generation, persistence, retrieval and payment endpoints
// and satisfies the collaborator interfaces of the workflow and payment
// packages.
package client
