// Package lib holds integrations that do not belong to a single layer:
// identity-token verification (Firebase) and outbound email (Resend).
package lib
