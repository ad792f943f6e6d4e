// Package client contains the CLI side of the RetailMediaAI HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     server endpoints: SendOTP, SendWelcomeEmail, ForgotPassword,
//     SendWeeklyReport, SignIn, ExportCreative and Ping.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that maps
//     server error bodies to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, common.ErrEmailDoesNotExist,
// common.ErrMailUnavailable. Other 4xx/5xx responses surface as *APIError
// carrying the server's message.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
