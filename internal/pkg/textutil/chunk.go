package textutil

import (
	"regexp"
	"strings"
)

var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// ChunkText splits text into pieces of at most maxChars characters,
// packing whole paragraphs together and word-splitting paragraphs that are
// themselves oversized.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = 1200
	}

	var paragraphs []string
	for _, p := range paragraphSplit.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	current := ""

	for _, para := range paragraphs {
		if len(current)+len(para)+1 <= maxChars {
			if current != "" {
				current += "\n\n"
			}
			current += para
			continue
		}

		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}

		if len(para) <= maxChars {
			current = para
			continue
		}

		// Oversized paragraph: split on words.
		temp := ""
		for _, word := range strings.Fields(para) {
			if len(temp)+len(word)+1 <= maxChars {
				if temp != "" {
					temp += " "
				}
				temp += word
			} else {
				if temp != "" {
					chunks = append(chunks, temp)
				}
				temp = word
			}
		}
		current = temp
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}
