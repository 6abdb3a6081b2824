// Text chunking for document ingestion.

package cli

import (
	"strings"
)

// maxChunkSize bounds chunk length so a handful of retrieved chunks stays
// well inside the completion context window.
const maxChunkSize = 1200

// chunkText splits text into chunks on paragraph boundaries, merging
// consecutive paragraphs until maxChunkSize would be exceeded. Paragraphs
// longer than maxChunkSize become their own chunk rather than being split
// mid-sentence.
func chunkText(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(paragraph)+2 > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
