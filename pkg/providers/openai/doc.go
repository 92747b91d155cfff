// Package openai implements the chat model adapter for OpenAI-compatible
// chat completions APIs. The default base URL points at OpenRouter, which
// also reads the HTTP-Referer and X-Title attribution headers.
//
//	client, err := openai.New(&cfg.Providers.Chat)
//	if err != nil {
//	    backend = providers.Unconfigured()
//	} else {
//	    backend = providers.Configured(client)
//	}
//	reply, err := client.Complete(ctx, systemPrompt, "When should I sow wheat?")
package openai
