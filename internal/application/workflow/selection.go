package workflow

import (
	"fmt"
	"sort"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// BuildOptions renders the multi-select entries for candidates.
func BuildOptions(candidates []domain.CommandCandidate) []ports.SelectOption {
	options := make([]ports.SelectOption, len(candidates))
	for i, c := range candidates {
		options[i] = ports.SelectOption{
			Label:       domain.FormatLabel(i+1, c),
			Description: fmt.Sprintf("%s [%s]", c.Description, c.SafetyLevel),
		}
	}
	return options
}

// ResolveSelection maps selected labels back to candidate positions (0-based),
// ordered as in the candidate list and de-duplicated.
func ResolveSelection(labels []string, candidates []domain.CommandCandidate) ([]int, error) {
	seen := make(map[int]bool, len(labels))
	positions := make([]int, 0, len(labels))
	for _, label := range labels {
		idx, err := domain.ParseLabelIndex(label)
		if err != nil {
			return nil, err
		}
		if idx > len(candidates) {
			return nil, fmt.Errorf("selection %q is out of range (1..%d)", label, len(candidates))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		positions = append(positions, idx-1)
	}
	sort.Ints(positions)
	return positions, nil
}
