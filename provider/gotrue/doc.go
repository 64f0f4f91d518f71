// Package gotrue is a REST client for a GoTrue-style identity service:
// email/password signup, password-grant token issuance, and logout.
// The service owns credential validation and token issuance; this
// client only moves requests and surfaces the service's own error
// messages.
package gotrue
