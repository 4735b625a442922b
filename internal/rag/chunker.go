package rag

import "strings"

// SplitText cuts text into chunks of at most size characters with the given
// overlap between consecutive chunks. Paragraph breaks are preferred cut
// points; a paragraph longer than size is split at word boundaries. Used by
// the offline ingestion job; the serving path never chunks.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= size {
			pieces = append(pieces, para)
			continue
		}
		pieces = append(pieces, splitWords(para, size)...)
	}

	// Pack pieces into chunks, carrying overlap from the previous chunk.
	var chunks []string
	var b strings.Builder
	for _, p := range pieces {
		if b.Len() > 0 && b.Len()+2+len(p) > size {
			chunk := b.String()
			chunks = append(chunks, chunk)
			b.Reset()
			if overlap > 0 {
				b.WriteString(tail(chunk, overlap))
				b.WriteString("\n\n")
			}
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// splitWords splits a single long paragraph at word boundaries.
func splitWords(para string, size int) []string {
	var out []string
	var b strings.Builder
	for _, w := range strings.Fields(para) {
		if b.Len() > 0 && b.Len()+1+len(w) > size {
			out = append(out, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// tail returns the last n bytes of s aligned to a word boundary.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	t := s[len(s)-n:]
	if i := strings.IndexByte(t, ' '); i >= 0 && i+1 < len(t) {
		t = t[i+1:]
	}
	return t
}
