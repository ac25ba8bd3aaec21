package markov

import (
	"gonum.org/v1/gonum/stat"
)

// ModelStats holds aggregated statistics for a single Model.
type ModelStats struct {
	Order            int     `json:"order"`
	Keys             int     `json:"keys"`              // The number of distinct ngrams.
	Transitions      int     `json:"transitions"`       // The number of ngram -> character pairs, duplicates included.
	Beginnings       int     `json:"beginnings"`        // The number of starting keys, duplicates included.
	UniqueBeginnings int     `json:"unique_beginnings"` // The number of distinct starting keys.
	Alphabet         int     `json:"alphabet"`          // The number of distinct characters following any key, end marker excluded.
	TerminalKeys     int     `json:"terminal_keys"`     // The number of keys that can be followed by the end marker.
	MeanEntropy      float64 `json:"mean_entropy"`      // Mean Shannon entropy (nats) of the per-key successor distributions.
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	s := ModelStats{
		Order:      m.order,
		Keys:       len(m.transitions),
		Beginnings: len(m.beginnings),
	}

	unique := make(map[string]struct{}, len(m.beginnings))
	for _, b := range m.beginnings {
		unique[b] = struct{}{}
	}
	s.UniqueBeginnings = len(unique)

	alphabet := make(map[rune]struct{})
	var entropySum float64
	counts := make(map[rune]int)
	var probs []float64
	for _, successors := range m.transitions {
		s.Transitions += len(successors)
		clear(counts)
		for _, r := range successors {
			counts[r]++
			if r != m.end {
				alphabet[r] = struct{}{}
			}
		}
		if _, ok := counts[m.end]; ok {
			s.TerminalKeys++
		}

		probs = probs[:0]
		for _, c := range counts {
			probs = append(probs, float64(c)/float64(len(successors)))
		}
		entropySum += stat.Entropy(probs)
	}
	s.Alphabet = len(alphabet)
	if s.Keys > 0 {
		s.MeanEntropy = entropySum / float64(s.Keys)
	}
	return s
}
