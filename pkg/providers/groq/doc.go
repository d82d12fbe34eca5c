// Package groq implements the Groq provider adapter.
//
// Groq exposes an OpenAI-compatible chat completions API. The adapter sends
// non-streaming completions with a bearer token and normalizes the first
// choice into a providers.CompletionResponse.
//
// # Basic Usage
//
//	provider, err := groq.NewProvider(providers.ProviderConfig{
//	    Name:    "groq",
//	    APIKey:  os.Getenv("GROQ_API_KEY"),
//	    Timeout: 30 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	resp, err := provider.SendCompletion(ctx, &providers.CompletionRequest{
//	    Model: "llama-3.1-8b-instant",
//	    Messages: []providers.Message{
//	        {Role: "system", Content: "You are helpful."},
//	        {Role: "user", Content: "Hello!"},
//	    },
//	    Temperature: 0.3,
//	    MaxTokens:   350,
//	})
//
// A response without choices yields an empty Content and no error.
package groq
