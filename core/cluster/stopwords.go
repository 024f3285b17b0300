package cluster

// stopwords combines common english stopwords with legal boilerplate terms
// that dominate every filing and carry no grouping signal.
var stopwords = func() map[string]bool {
	words := []string{
		// english
		"about", "above", "after", "again", "all", "and", "any", "are",
		"because", "been", "before", "being", "below", "between", "both",
		"but", "can", "did", "does", "doing", "down", "during", "each",
		"few", "for", "from", "further", "had", "has", "have", "having",
		"her", "here", "hers", "him", "his", "how", "into", "its", "itself",
		"just", "more", "most", "not", "now", "off", "once", "only", "other",
		"our", "ours", "out", "over", "own", "same", "she", "should", "some",
		"such", "than", "that", "the", "their", "theirs", "them", "then",
		"there", "these", "they", "this", "those", "through", "too", "under",
		"until", "very", "was", "were", "what", "when", "where", "which",
		"while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours",
		// legal boilerplate
		"court", "plaintiff", "defendant", "motion", "case", "order",
		"file", "filed", "pursuant", "party", "parties", "shall", "judge",
		"herein", "thereof", "hereby", "wherefore", "whatsoever",
		"wheresoever", "therefrom", "hereinafter", "hereto", "therein",
		"aforesaid",
	}
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}()
