package domain

// Domain contains core models and interfaces.

// Joke is a fetched joke. Values are never mutated after construction.
type Joke struct {
	Text      string `json:"text"`
	Punchline string `json:"punchline"`
}

// Render returns the two-line display form of the joke.
func (j Joke) Render() string {
	return j.Text + "\n" + j.Punchline
}

// ErrorType classifies transport failures reported by a joke service.
type ErrorType int

const (
	ErrorOther ErrorType = iota
	ErrorNoConnection
)

func (t ErrorType) String() string {
	switch t {
	case ErrorNoConnection:
		return "no_connection"
	default:
		return "other"
	}
}

// Message ids resolved through a MessageLookup.
const (
	MessageNoConnection       = "no_connection"
	MessageServiceUnavailable = "service_unavailable"
)

// MessageLookup resolves a message id to display text.
type MessageLookup interface {
	GetString(id string) string
}

// FailureKind tags a Failure.
type FailureKind int

const (
	FailureServiceUnavailable FailureKind = iota
	FailureNoConnection
)

func (k FailureKind) String() string {
	switch k {
	case FailureNoConnection:
		return "no_connection"
	default:
		return "service_unavailable"
	}
}

// Failure describes why a fetch did not produce a Joke.
type Failure struct {
	Kind FailureKind
}

// FailureFor maps a transport classification to a domain failure.
func FailureFor(t ErrorType) Failure {
	if t == ErrorNoConnection {
		return Failure{Kind: FailureNoConnection}
	}
	return Failure{Kind: FailureServiceUnavailable}
}

// Message resolves the failure to display text. Unknown kinds resolve to the
// service-unavailable message.
func (f Failure) Message(lookup MessageLookup) string {
	if lookup == nil {
		return f.messageID()
	}
	return lookup.GetString(f.messageID())
}

func (f Failure) messageID() string {
	switch f.Kind {
	case FailureNoConnection:
		return MessageNoConnection
	default:
		return MessageServiceUnavailable
	}
}
