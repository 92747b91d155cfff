// Farmer Genius gateway serves the Farmer Genius website and proxies its
// two API endpoints:
//   - POST /api/chat: farming questions answered by a language model
//   - POST /api/translate: text translation for the site's language picker
//
// Both endpoints share a 10,000 byte body limit and a per-client rate limit
// of 10 requests per minute.
//
// Usage:
//
//	# Start with defaults (site in ./public, port 5000)
//	farmgenius run
//
//	# Start with a configuration file
//	farmgenius run --config /etc/farmgenius/farmgenius.yaml
//
//	# Check a configuration file
//	farmgenius validate --config farmgenius.yaml
//
//	# Show version information
//	farmgenius version
package main

func main() {
	Execute()
}
