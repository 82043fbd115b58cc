package dispatch

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/doeshing/clio-go/internal/domain"
)

// Normalize turns generator stdout into a GenerationResult.
// Output that is not a JSON object yields a MalformedOutput error carrying the raw text.
// Only the top level is strict: "error" is read before anything else, and
// mistyped command fields are defaulted or skipped instead of failing the document.
func Normalize(stdout []byte) (domain.GenerationResult, error) {
	trimmed := bytes.TrimSpace(stdout)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.GenerationResult{}, malformed(stdout, nil)
	}

	var doc map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&doc); err != nil {
		return domain.GenerationResult{}, malformed(stdout, err)
	}
	if dec.More() {
		return domain.GenerationResult{}, malformed(stdout, nil)
	}

	if raw, ok := doc["error"]; ok && !isNull(raw) {
		var message string
		if err := json.Unmarshal(raw, &message); err != nil {
			return domain.GenerationResult{}, malformed(stdout, err)
		}
		if message == domain.NoCommandFound {
			return domain.Empty(), nil
		}
		if message != "" {
			return domain.Failure(message), nil
		}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(doc["commands"], &entries); err != nil {
		// Absent, null or not a list: nothing to propose.
		return domain.Empty(), nil
	}

	candidates := make([]domain.CommandCandidate, 0, len(entries))
	for _, entry := range entries {
		if candidate, ok := decodeCandidate(entry); ok {
			candidates = append(candidates, candidate)
		}
	}
	return domain.Success(candidates), nil
}

// decodeCandidate reads one entry of "commands". Entries without a usable
// command string are skipped.
func decodeCandidate(raw json.RawMessage) (domain.CommandCandidate, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.CommandCandidate{}, false
	}
	command := stringField(fields, "command")
	if strings.TrimSpace(command) == "" {
		return domain.CommandCandidate{}, false
	}

	candidate := domain.CommandCandidate{
		Command:     command,
		Description: stringField(fields, "description"),
		SafetyLevel: domain.SafetyLevel(stringField(fields, "safety_level")),
	}
	if candidate.Description == "" {
		candidate.Description = domain.DefaultDescription
	}
	if candidate.SafetyLevel == "" {
		candidate.SafetyLevel = domain.SafetyUnknown
	}
	return candidate, true
}

// stringField returns fields[key] when it is a JSON string and "" otherwise.
func stringField(fields map[string]json.RawMessage, key string) string {
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil {
		return ""
	}
	return s
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func malformed(stdout []byte, cause error) *domain.Error {
	e := domain.WrapError(domain.KindMalformedOutput, "generator output is not valid JSON", cause)
	e.Detail = string(stdout)
	return e
}
