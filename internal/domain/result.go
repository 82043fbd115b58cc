package domain

// ResultKind tags the populated variant of a GenerationResult.
type ResultKind int

const (
	ResultEmpty ResultKind = iota
	ResultSuccess
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	default:
		return "empty"
	}
}

// NoCommandFound is the in-band sentinel the generator uses to signal "no results".
const NoCommandFound = "No Command Found"

// GenerationResult is the normalized outcome of one generator call.
// Exactly one variant is populated; build values with the constructors below.
type GenerationResult struct {
	kind       ResultKind
	candidates []CommandCandidate
	message    string
}

// Success wraps a non-empty candidate list. An empty list yields Empty.
func Success(candidates []CommandCandidate) GenerationResult {
	if len(candidates) == 0 {
		return Empty()
	}
	cp := make([]CommandCandidate, len(candidates))
	copy(cp, candidates)
	return GenerationResult{kind: ResultSuccess, candidates: cp}
}

// Empty is the explicit "no command found" outcome.
func Empty() GenerationResult {
	return GenerationResult{kind: ResultEmpty}
}

// Failure carries a generator-reported error message verbatim.
func Failure(message string) GenerationResult {
	return GenerationResult{kind: ResultFailure, message: message}
}

// Kind returns the populated variant.
func (r GenerationResult) Kind() ResultKind { return r.kind }

// Candidates returns a copy of the candidate list; nil unless Kind is ResultSuccess.
func (r GenerationResult) Candidates() []CommandCandidate {
	if r.kind != ResultSuccess {
		return nil
	}
	cp := make([]CommandCandidate, len(r.candidates))
	copy(cp, r.candidates)
	return cp
}

// Message returns the failure message; empty unless Kind is ResultFailure.
func (r GenerationResult) Message() string {
	if r.kind != ResultFailure {
		return ""
	}
	return r.message
}
