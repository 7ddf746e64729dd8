package datetime

import (
	"sort"
)

// MergeAllTokens collapses candidate spans of one category into disjoint
// extract results ordered by start.
//
// Candidates are visited by ascending start. A candidate inside an existing
// span is dropped; one covering existing spans replaces them; one that only
// partially overlaps is dropped, so the earliest wider match wins. Empty
// candidates are ignored.
func MergeAllTokens(tokens []Token, text, typeName string) []ExtractResult {
	sorted := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.End > tok.Start {
			sorted = append(sorted, tok)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var merged []Token
	for _, tok := range sorted {
		keep := true
		first := -1
		for i, m := range merged {
			switch {
			case tok.Start >= m.Start && tok.End <= m.End:
				keep = false
			case tok.Start <= m.Start && tok.End >= m.End:
				if first < 0 {
					first = i
				}
			case tok.Start < m.End && m.Start < tok.End:
				keep = false
			}
			if !keep {
				break
			}
		}
		if !keep {
			continue
		}
		if first < 0 {
			merged = append(merged, tok)
			continue
		}
		next := make([]Token, 0, len(merged))
		next = append(next, merged[:first]...)
		next = append(next, tok)
		for _, m := range merged[first+1:] {
			if m.Start >= tok.Start && m.End <= tok.End {
				continue
			}
			next = append(next, m)
		}
		merged = next
	}

	results := make([]ExtractResult, 0, len(merged))
	for _, tok := range merged {
		results = append(results, ExtractResult{
			Start:  tok.Start,
			Length: tok.Length(),
			Text:   substring(text, tok.Start, tok.Length()),
			Type:   typeName,
		})
	}
	return results
}

// tokensFromResults converts extract results back to tokens.
func tokensFromResults(ers []ExtractResult) []Token {
	tokens := make([]Token, 0, len(ers))
	for _, er := range ers {
		tokens = append(tokens, Token{Start: er.Start, End: er.End()})
	}
	return tokens
}

func sortByStart(ers []ExtractResult) {
	sort.SliceStable(ers, func(i, j int) bool {
		return ers[i].Start < ers[j].Start
	})
}
