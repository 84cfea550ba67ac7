// Package verifysdk is a Go client for the hireproof verification API.
//
// A Client makes unauthenticated calls such as Register and Login. Login
// returns a Session that attaches the bearer token to every request:
//
//	c := verifysdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "sam@example.com", password)
//	grant, err := s.Presign(ctx, "front.jpg", "image/jpeg", "id-documents")
//
// Admin sessions start without MFA. Call Session.VerifyMFA with the
// emailed code to upgrade the session before using moderation endpoints.
//
// Error responses are returned as *APIError.
package verifysdk
