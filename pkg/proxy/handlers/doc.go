// Package handlers provides the HTTP handler for POST /api/chat.
//
// The handler follows the same steps for every request:
//
//  1. Decode the body (size limited) and validate userQuestion
//  2. Classify the question as greeting, district or generic
//  3. Render the system and user messages
//  4. Send one completion to the provider
//  5. Reply with the first choice's text, or the fallback reply if empty
//
// Failures are logged once with the request ID from the context and mapped
// to status codes by proxy.HandleError.
//
// # Usage
//
//	opts := handlers.ChatOptionsFromConfig(cfg)
//	opts.Metrics = collector
//	opts.Tracer = tracer
//	r.Post("/api/chat", handlers.NewChatHandler(provider, chat.NewBuilder(""), opts).ServeHTTP)
package handlers
