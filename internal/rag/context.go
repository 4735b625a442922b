package rag

import "strings"

// AssembleContext joins match texts into a single prompt context bounded by
// maxChars. Matches are consumed in order, so the highest-similarity chunks
// survive truncation. A chunk that does not fit at all is dropped rather than
// cut mid-sentence, except the first one, which is hard-truncated so a single
// oversized chunk still yields usable context.
func AssembleContext(matches []Match, maxChars int) string {
	if maxChars <= 0 || len(matches) == 0 {
		return ""
	}

	const sep = "\n\n"
	var b strings.Builder
	for _, m := range matches {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		need := len(text)
		if b.Len() > 0 {
			need += len(sep)
		}
		if b.Len()+need > maxChars {
			if b.Len() == 0 {
				return text[:maxChars]
			}
			break
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(text)
	}
	return b.String()
}
