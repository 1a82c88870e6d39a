// Package devconnect is the authentication nucleus of the devconnect API:
// credential storage contracts, JWT issuance, login and registration, plus
// the HTTP glue shared by the profile and post packages.
//
// Tokens:
//   - TokenService signs HS256 tokens carrying {"user":{"id":...}} together
//     with the registered iat/exp claims. There is a single configured expiry
//     used by every issuing path.
//   - Verification is stateless. The jwtware middleware reads the token from
//     the configured lookup (x-auth-token by default), validates it with the
//     TokenService and stores the claims in the request locals and context.
//
// Credentials:
//   - RegisterUserHandler validates uniqueness, derives the gravatar URL,
//     hashes the password and persists the user through the Users store.
//   - Auther verifies email/password pairs through a UserProvider. Unknown
//     emails and wrong passwords produce the same ErrInvalidCredentials so
//     accounts cannot be enumerated.
//
// Errors:
//   - Every domain error is a go-errors *Error with a category.
//     HTTPErrorHandler renders categories to the response shapes the clients
//     expect ({"errors":[{"msg":...}]} for validation, {"msg":...} otherwise).
package devconnect
