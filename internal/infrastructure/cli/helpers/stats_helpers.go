package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/clio-go/internal/domain"
)

// CommandStatistic represents usage statistics for a command
type CommandStatistic struct {
	Command string
	Count   int
}

// CalculateTopCommands returns the top N most frequently submitted commands
// If limit is 0 or negative, returns all commands
func CalculateTopCommands(commandFrequency map[string]int, limit int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(commandFrequency))
	for cmd, count := range commandFrequency {
		stats = append(stats, CommandStatistic{Command: cmd, Count: count})
	}
	sortStatisticsByFrequency(stats)

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by command name (ascending)
func sortStatisticsByFrequency(stats []CommandStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
}

// SafetyDistribution counts records per safety label, ordered from most to least severe.
func SafetyDistribution(records []domain.HistoryRecord) []CommandStatistic {
	counts := map[string]int{}
	levels := map[string]domain.SafetyLevel{}
	for _, rec := range records {
		key := string(rec.SafetyLevel)
		counts[key]++
		levels[key] = rec.SafetyLevel
	}
	out := make([]CommandStatistic, 0, len(counts))
	for key, count := range counts {
		out = append(out, CommandStatistic{Command: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := levels[out[i].Command].Rank(), levels[out[j].Command].Rank()
		if ri == rj {
			return out[i].Command < out[j].Command
		}
		return ri > rj
	})
	return out
}

// DeriveUndoHints generates undo hints based on command history
// Returns a sorted list of unique hints
func DeriveUndoHints(records []domain.HistoryRecord) []string {
	hintMap := make(map[string]string)

	for _, record := range records {
		normalizedCommand := strings.ToLower(strings.TrimSpace(record.Command))
		addHintIfApplicable(hintMap, normalizedCommand)
	}

	hints := make([]string, 0, len(hintMap))
	for _, hint := range hintMap {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return hints
}

var undoHints = map[string]struct {
	prefix string
	hint   string
}{
	"git": {
		prefix: "git ",
		hint:   "Use `git status`, `git reflog`, or `git restore` to inspect and undo git changes.",
	},
	"kubectl": {
		prefix: "kubectl ",
		hint:   "Use `kubectl rollout undo` or `kubectl get events` to recover from cluster issues.",
	},
	"rm": {
		prefix: "rm ",
		hint:   "Restore files via backups or `git checkout -- <path>` if tracked.",
	},
	"docker": {
		prefix: "docker ",
		hint:   "Use `docker ps -a` and `docker logs` to review container history before repeating.",
	},
}

func addHintIfApplicable(hintMap map[string]string, command string) {
	for key, config := range undoHints {
		if strings.HasPrefix(command, config.prefix) {
			hintMap[key] = config.hint
		}
	}
}
