package chat

import (
	"fmt"
	"strings"
)

// DefaultSystemInstruction is the assistant persona sent as the system message.
const DefaultSystemInstruction = `You are AirCause AI, an air quality assistant for Delhi.

STRICT RULES (MANDATORY):
- Always respond ONLY in English.
- Never use Hindi or Hinglish words.
- If the user greets (hi, hello, hey), respond with:
  1. A friendly greeting
  2. Briefly explain what AirCause does
  3. Ask which Delhi district the user wants information about

- If a Delhi district is provided:
  Explain clearly:
  • Current AQI level
  • Main pollution contributors
  • Why pollution is high
  • Practical solutions
  • Health & safety precautions

Tone:
- Clear
- Informative
- Simple English
- Public-friendly (non-technical)`

const greetingPrompt = `The user has greeted you.

Respond with:
1. A friendly greeting
2. Introduce AirCause as an air quality intelligence system for Delhi
3. Ask the user which Delhi district they want air pollution information for`

const districtPrompt = `District: %s
AQI: %s
Pollution Contributors: %s

User Question:
%s

Explain:
- Why pollution is high
- Top contributors
- Practical solutions
- Safety and health precautions`

const genericPrompt = `User Question:
%s

Explain generally and ask which Delhi district they want details for.`

// PromptPair is the system and user message for a single completion.
type PromptPair struct {
	Kind              Kind
	SystemInstruction string
	UserPrompt        string
}

// Builder renders prompts. It is immutable after construction and safe for
// concurrent use.
type Builder struct {
	systemInstruction string
}

// NewBuilder returns a Builder using instruction as the system message.
// An empty instruction selects DefaultSystemInstruction.
func NewBuilder(instruction string) *Builder {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = DefaultSystemInstruction
	}
	return &Builder{systemInstruction: instruction}
}

// SystemInstruction returns the system message.
func (b *Builder) SystemInstruction() string {
	return b.systemInstruction
}

// Build classifies req and renders its prompt pair.
func (b *Builder) Build(req Request) PromptPair {
	kind := Classify(req)
	return PromptPair{
		Kind:              kind,
		SystemInstruction: b.systemInstruction,
		UserPrompt:        UserPrompt(kind, req),
	}
}

// UserPrompt renders the user message for a given kind.
func UserPrompt(kind Kind, req Request) string {
	switch kind {
	case KindGreeting:
		return greetingPrompt
	case KindDistrict:
		d := req.District
		if d == nil {
			d = &District{}
		}
		return fmt.Sprintf(districtPrompt, d.NameText(), d.AQIText(), d.Causes.String(), req.UserQuestion)
	default:
		return fmt.Sprintf(genericPrompt, req.UserQuestion)
	}
}

// BuildPrompt classifies req and renders its prompt pair with instruction
// as the system message.
func BuildPrompt(instruction string, req Request) PromptPair {
	return NewBuilder(instruction).Build(req)
}
