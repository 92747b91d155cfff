// Package translate provides the translation backends behind
// POST /api/translate.
//
// GoogleTranslator (backend "google", the default) calls the public
// translate endpoint and is paced with a token bucket so a burst of
// requests does not get the whole process throttled upstream.
// ModelTranslator (backend "llm") asks the configured chat model instead.
//
// Translations are never cached.
package translate
