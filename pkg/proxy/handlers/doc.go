// Package handlers implements the HTTP endpoints of the gateway.
//
//   - ChatHandler: POST /api/chat, one message to the language model
//   - TranslateHandler: POST /api/translate
//   - NotFoundHandler: any other /api/ path, structured 404
//
// The two proxy handlers only parse and serve; method, size, rate limit
// and JSON checks are done by proxy.Pipeline before Parse runs. Backend
// failures are logged with their cause and answered with one static
// message per endpoint.
//
// The health checks registered on /readyz also live here: SiteCheck,
// StoreCheck and ChatBackendCheck.
package handlers
