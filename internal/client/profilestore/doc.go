// Package profilestore persists every per-user record of RetailMediaAI in a
// flat key-value namespace.
//
// Records are JSON documents keyed by a fixed prefix and the user's normalized
// email (trimmed, lower-cased):
//
//	user_auth_{email}           {"password": "..."}
//	user_profile_{email}        {"name","email","image","role","phoneNumber","theme"}
//	phone_map_{phone}           "email"
//	myCreatives_{email}         [creative, ...]
//	dashboard_autosave_{email}  arbitrary JSON
//	usage_stats_{email}         {"YYYY-MM-DD": minutes}
//	welcome_email_sent_{email}  true
//
// A user "exists" when either the auth record or the profile exists; the two
// are written independently. Lookups of a missing record return a zero value
// and a nil error.
//
// Every single-record read-modify-write (profile merge, creative list, usage
// counters) goes through kv.Repository.Update and is atomic per key.
// RegisterUser checks for an existing user and then writes two keys; two
// concurrent registrations of the same email may both succeed, and the last
// write wins.
package profilestore
