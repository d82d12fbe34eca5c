package chat

import "regexp"

// Kind identifies which prompt template a request maps to.
type Kind int

const (
	// KindGeneric is a question with no district context.
	KindGeneric Kind = iota
	// KindGreeting is a salutation such as "hello".
	KindGreeting
	// KindDistrict is a question accompanied by district data.
	KindDistrict
)

// String returns the label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindGreeting:
		return "greeting"
	case KindDistrict:
		return "district"
	default:
		return "generic"
	}
}

var greetingPattern = regexp.MustCompile(`(?i)^(hi|hello|hey|hii|hy)\b`)

// IsGreeting reports whether the question opens with a greeting word.
func IsGreeting(question string) bool {
	return greetingPattern.MatchString(question)
}

// Classify picks the template for req. Greetings win over district data.
func Classify(req Request) Kind {
	switch {
	case IsGreeting(req.UserQuestion):
		return KindGreeting
	case req.District != nil:
		return KindDistrict
	default:
		return KindGeneric
	}
}
