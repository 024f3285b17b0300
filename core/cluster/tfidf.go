// Package cluster groups case documents by textual similarity using TF-IDF
// vectors and k-means, surfacing the dominant keywords per group.
package cluster

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lexgraph/lexgraph/model"
)

const (
	// MinDocuments is the smallest corpus worth clustering.
	MinDocuments = 5
	// MaxFeatures caps the vocabulary size.
	MaxFeatures = 5000
	// KeywordsPerCluster is how many top terms label each cluster.
	KeywordsPerCluster = 5

	minDocFrequency  = 2
	maxDocFrequency  = 0.85
	kmeansIterations = 20
)

var wordPattern = regexp.MustCompile(`[a-z]{3,}`)

// Cluster groups documents by TF-IDF cosine similarity. Corpora below
// MinDocuments yield no clusters, as do groups with fewer than two members.
// Members are ordered by their mean similarity to the rest of the group.
func Cluster(texts map[int64]string, maxClusters int) []*model.DocumentCluster {
	if len(texts) < MinDocuments {
		return []*model.DocumentCluster{}
	}

	ids := make([]int64, 0, len(texts))
	for id := range texts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tokenized := make([][]string, len(ids))
	for i, id := range ids {
		tokenized[i] = tokenize(texts[id])
	}

	vocabulary := buildVocabulary(tokenized)
	if len(vocabulary) == 0 {
		return []*model.DocumentCluster{}
	}

	vectors := vectorize(tokenized, vocabulary, len(ids))

	k := len(ids) / 5
	if k < 2 {
		k = 2
	}
	if k > 5 {
		k = 5
	}
	if maxClusters > 0 && k > maxClusters {
		k = maxClusters
	}

	labels, centroids := kmeans(vectors, k)

	clusters := []*model.DocumentCluster{}
	for clusterIndex := 0; clusterIndex < k; clusterIndex++ {
		var members []int
		for i, label := range labels {
			if label == clusterIndex {
				members = append(members, i)
			}
		}
		if len(members) < 2 {
			continue
		}

		documents := make([]model.ClusteredDocument, 0, len(members))
		for _, i := range members {
			total := 0.0
			for _, j := range members {
				if i != j {
					total += dot(vectors[i], vectors[j])
				}
			}
			documents = append(documents, model.ClusteredDocument{
				DocumentID: ids[i],
				Similarity: math.Round(total/float64(len(members)-1)*1000) / 1000,
			})
		}
		sort.SliceStable(documents, func(a, b int) bool {
			return documents[a].Similarity > documents[b].Similarity
		})

		clusters = append(clusters, &model.DocumentCluster{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("Document Cluster %d", len(clusters)+1),
			Description: fmt.Sprintf("Group of %d similar documents", len(documents)),
			Keywords:    topKeywords(centroids[clusterIndex], vocabulary),
			Documents:   documents,
		})
	}

	return clusters
}

func tokenize(text string) []string {
	tokens := []string{}
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// term holds a vocabulary entry with its index into the vector space.
type term struct {
	word  string
	index int
}

// buildVocabulary keeps terms appearing in at least two documents but not in
// more than 85% of them, capped to the most frequent MaxFeatures terms.
func buildVocabulary(tokenized [][]string) []term {
	docFrequency := map[string]int{}
	totalFrequency := map[string]int{}
	for _, tokens := range tokenized {
		seen := map[string]bool{}
		for _, token := range tokens {
			totalFrequency[token]++
			if !seen[token] {
				seen[token] = true
				docFrequency[token]++
			}
		}
	}

	limit := int(maxDocFrequency * float64(len(tokenized)))
	words := []string{}
	for word, df := range docFrequency {
		if df >= minDocFrequency && df <= limit {
			words = append(words, word)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if totalFrequency[words[i]] != totalFrequency[words[j]] {
			return totalFrequency[words[i]] > totalFrequency[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > MaxFeatures {
		words = words[:MaxFeatures]
	}

	vocabulary := make([]term, len(words))
	for i, word := range words {
		vocabulary[i] = term{word: word, index: i}
	}
	return vocabulary
}

// vectorize builds l2-normalized TF-IDF vectors with smoothed idf.
func vectorize(tokenized [][]string, vocabulary []term, docCount int) [][]float64 {
	indexes := make(map[string]int, len(vocabulary))
	docFrequency := make([]int, len(vocabulary))
	for _, t := range vocabulary {
		indexes[t.word] = t.index
	}
	for _, tokens := range tokenized {
		seen := map[int]bool{}
		for _, token := range tokens {
			if index, ok := indexes[token]; ok && !seen[index] {
				seen[index] = true
				docFrequency[index]++
			}
		}
	}

	idf := make([]float64, len(vocabulary))
	for i, df := range docFrequency {
		idf[i] = math.Log(float64(1+docCount)/float64(1+df)) + 1
	}

	vectors := make([][]float64, len(tokenized))
	for i, tokens := range tokenized {
		vector := make([]float64, len(vocabulary))
		for _, token := range tokens {
			if index, ok := indexes[token]; ok {
				vector[index] += idf[index]
			}
		}
		normalize(vector)
		vectors[i] = vector
	}
	return vectors
}

// kmeans clusters unit vectors by cosine similarity. Centroids start at
// maximally dissimilar documents so repeated runs over the same corpus group
// identically.
func kmeans(vectors [][]float64, k int) ([]int, [][]float64) {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64{}, vectors[0]...))
	for len(centroids) < k {
		farthest, lowest := 0, math.Inf(1)
		for i, vector := range vectors {
			closest := math.Inf(-1)
			for _, centroid := range centroids {
				if sim := dot(vector, centroid); sim > closest {
					closest = sim
				}
			}
			if closest < lowest {
				farthest, lowest = i, closest
			}
		}
		centroids = append(centroids, append([]float64{}, vectors[farthest]...))
	}

	labels := make([]int, len(vectors))
	for iteration := 0; iteration < kmeansIterations; iteration++ {
		changed := false
		for i, vector := range vectors {
			best, bestSim := 0, math.Inf(-1)
			for c, centroid := range centroids {
				if sim := dot(vector, centroid); sim > bestSim {
					best, bestSim = c, sim
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iteration > 0 {
			break
		}

		for c := range centroids {
			centroid := make([]float64, len(vectors[0]))
			count := 0
			for i, vector := range vectors {
				if labels[i] == c {
					count++
					for d, value := range vector {
						centroid[d] += value
					}
				}
			}
			if count > 0 {
				normalize(centroid)
				centroids[c] = centroid
			}
		}
	}
	return labels, centroids
}

func topKeywords(centroid []float64, vocabulary []term) []string {
	sorted := append([]term{}, vocabulary...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return centroid[sorted[i].index] > centroid[sorted[j].index]
	})

	keywords := []string{}
	for _, t := range sorted {
		if len(keywords) == KeywordsPerCluster || centroid[t.index] == 0 {
			break
		}
		keywords = append(keywords, t.word)
	}
	return keywords
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(vector []float64) {
	norm := math.Sqrt(dot(vector, vector))
	if norm == 0 {
		return
	}
	for i := range vector {
		vector[i] /= norm
	}
}
