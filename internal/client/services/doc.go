// Package services contains the application flows of the RetailMediaAI CLI.
//
// AccountService drives sign-in (by email or phone number), OTP-verified
// registration, password reset, session sync and the one-time welcome email.
// ActivityTracker counts active minutes; ReportService mails the weekly usage
// report. Persistence goes through a ProfileStore; network calls go through
// client.Client.
package services
