package snapargs

import (
	"sort"
	"strings"

	"github.com/snapargs/snapargs/internal/match"
)

// Suggest returns up to the configured number of registered flag spellings
// resembling the given token, most similar first, ties broken by
// registration order. Tokens without a dash prefix yield no suggestions, and
// a candidate identical to the token is never returned.
func (p *Parser) Suggest(token string) []string {
	ranked := p.rankCandidates(token)

	candidates := make([]string, 0, len(ranked))
	for _, c := range ranked {
		candidates = append(candidates, c.spelling)
	}

	return candidates
}

type candidate struct {
	spelling string
	score    float64
}

func (p *Parser) rankCandidates(token string) []candidate {
	if !isFlagToken(token) {
		return nil
	}
	if i := strings.IndexByte(token, '='); i >= 0 {
		token = token[:i]
	}

	var ranked []candidate
	for pair := p.acceptedFlags.Oldest(); pair != nil; pair = pair.Next() {
		for _, spelling := range spellings(pair.Value) {
			if spelling == token {
				continue
			}
			if score := match.Ratio(token, spelling); score >= p.threshold {
				ranked = append(ranked, candidate{spelling: spelling, score: score})
			}
		}
	}

	// stable keeps registration order for equal scores
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > p.maxSuggest {
		ranked = ranked[:p.maxSuggest]
	}

	return ranked
}

func spellings(argument *Argument) []string {
	forms := []string{"--" + argument.long}
	if argument.Short != "" {
		forms = append(forms, "-"+argument.Short)
	}

	return forms
}

// collectSuggestions pairs every unrecognized flag-like token with its best
// candidate, skipping tokens a previous autofix pass already rewrote.
func (p *Parser) collectSuggestions(tokens []string, fixed map[string]bool) []Suggestion {
	var suggestions []Suggestion
	for _, token := range tokens {
		if !isFlagToken(token) || fixed[token] {
			continue
		}
		if token == "--help" || token == "-h" {
			continue
		}
		if _, known := p.lookupFlag(token); known {
			continue
		}
		if best := p.Suggest(token); len(best) > 0 {
			suggestions = append(suggestions, Suggestion{Observed: token, Candidate: best[0]})
		}
	}

	return suggestions
}
