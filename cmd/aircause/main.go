// AirCause is the chat backend for the AirCause air quality assistant.
//
// It serves POST /api/chat, builds a prompt from the user's question and
// optional Delhi district data, and answers with a completion from the Groq
// chat-completions API.
//
// Usage:
//
//	# Start the server on PORT (default 3002)
//	aircause
//
//	# Start with a configuration file
//	aircause run --config /etc/aircause/config.yaml
//
//	# Validate configuration without starting the server
//	aircause run --dry-run
//
//	# Show version information
//	aircause version --output json
package main

func main() {
	Execute()
}
