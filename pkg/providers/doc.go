// Package providers contains the outbound side of the gateway: the shared
// HTTP client used by every backend adapter, the typed backend errors, and
// the ChatBackend variant.
//
// Adapters live in subpackages:
//
//   - openai: OpenAI-compatible chat completions (OpenRouter by default)
//   - translate: the public Google translate endpoint, or the chat model
//     prompted to translate
//
// HTTPClient retries transport errors and 5xx answers with exponential
// backoff. Authentication failures (401/403), backend rate limits (429) and
// other 4xx answers are returned immediately as AuthError, RateLimitError
// and ProviderError. A call that exceeds its deadline returns TimeoutError.
//
// Handlers never show these errors to clients. They map every failure to
// one static message per endpoint and log the typed error.
package providers
