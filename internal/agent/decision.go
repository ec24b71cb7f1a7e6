package agent

// Kind tags a dispatch outcome. Collaborators consume the tag, never the
// presence or absence of an optional field.
type Kind int

const (
	// KindForward signals pass-through to the protected backend.
	KindForward Kind = iota
	// KindRedirect signals an HTTP 302 to Location.
	KindRedirect
)

// String returns the kind name for logging.
func (k Kind) String() string {
	if k == KindRedirect {
		return "redirect"
	}
	return "forward"
}

// Decision is the dispatcher's terminal outcome for one request.
type Decision struct {
	Kind Kind
	// Location is the absolute redirect target; empty for forwards.
	Location string
}

// Forward builds a pass-through decision.
func Forward() Decision {
	return Decision{Kind: KindForward}
}

// Redirect builds a redirect decision to the given absolute location.
func Redirect(location string) Decision {
	return Decision{Kind: KindRedirect, Location: location}
}
