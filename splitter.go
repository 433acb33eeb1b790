package webster

import (
	"regexp"
	"strings"
)

// Default chunking parameters, measured in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// separators are tried in order when a piece of text exceeds the chunk
// size: paragraph breaks first, then lines, then words, then characters.
var separators = []string{"\n\n", "\n", " ", ""}

// SplitChunk is a piece of a document produced by a Splitter, annotated
// with its position and the markdown heading hierarchy above it.
type SplitChunk struct {
	Content   string
	Headers   map[string]string
	StartLine int
	EndLine   int
}

// Splitter splits markdown documents into overlapping chunks suitable
// for embedding. The zero value is not usable; use NewSplitter.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewSplitter creates a Splitter with the default chunk size and overlap.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
	}
}

// piece is a fragment of the original text with its byte offset preserved,
// so chunk line ranges can be computed after merging.
type piece struct {
	text  string
	start int
}

// Split splits markdown into overlapping chunks.
// Chunks are split recursively on paragraph, line, word, and character
// boundaries, then merged greedily up to ChunkSize with ChunkOverlap
// characters carried between adjacent chunks.
func (s *Splitter) Split(markdown string) []SplitChunk {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}

	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := s.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	pieces := splitRecursive(piece{text: markdown, start: 0}, separators, size)
	merged := mergePieces(pieces, size, overlap)

	lineStarts := lineOffsets(markdown)
	headers := headingsByLine(markdown)

	chunks := make([]SplitChunk, 0, len(merged))
	for _, p := range merged {
		content := strings.TrimSpace(p.text)
		if content == "" {
			continue
		}
		startLine := lineForOffset(lineStarts, p.start)
		endLine := lineForOffset(lineStarts, p.start+len(p.text)-1)
		chunks = append(chunks, SplitChunk{
			Content:   content,
			Headers:   headers.activeAt(startLine),
			StartLine: startLine,
			EndLine:   endLine,
		})
	}
	return chunks
}

// splitRecursive splits p into pieces no longer than size, trying each
// separator in order and recursing into oversized fragments.
func splitRecursive(p piece, seps []string, size int) []piece {
	if len(p.text) <= size {
		return []piece{p}
	}
	if len(seps) == 0 {
		return hardSplit(p, size)
	}

	sep := seps[0]
	if sep == "" {
		return hardSplit(p, size)
	}
	if !strings.Contains(p.text, sep) {
		return splitRecursive(p, seps[1:], size)
	}

	var out []piece
	offset := p.start
	for _, part := range strings.SplitAfter(p.text, sep) {
		if part == "" {
			continue
		}
		sub := piece{text: part, start: offset}
		offset += len(part)
		if len(part) > size {
			out = append(out, splitRecursive(sub, seps[1:], size)...)
		} else {
			out = append(out, sub)
		}
	}
	return out
}

// hardSplit cuts text at exact size boundaries as a last resort.
func hardSplit(p piece, size int) []piece {
	var out []piece
	for i := 0; i < len(p.text); i += size {
		end := i + size
		if end > len(p.text) {
			end = len(p.text)
		}
		out = append(out, piece{text: p.text[i:end], start: p.start + i})
	}
	return out
}

// mergePieces greedily combines adjacent pieces into chunks up to size,
// carrying at most overlap trailing characters into the next chunk.
func mergePieces(pieces []piece, size, overlap int) []piece {
	var out []piece
	var cur []piece
	curLen := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		var b strings.Builder
		for _, p := range cur {
			b.WriteString(p.text)
		}
		out = append(out, piece{text: b.String(), start: cur[0].start})

		// Keep trailing pieces within the overlap budget for the next chunk.
		var kept []piece
		keptLen := 0
		for i := len(cur) - 1; i >= 0; i-- {
			if keptLen+len(cur[i].text) > overlap {
				break
			}
			keptLen += len(cur[i].text)
			kept = append([]piece{cur[i]}, kept...)
		}
		cur = kept
		curLen = keptLen
	}

	for _, p := range pieces {
		if curLen+len(p.text) > size && curLen > 0 {
			flush()
		}
		cur = append(cur, p)
		curLen += len(p.text)
	}
	if curLen > 0 {
		// Final flush; skip if fully contained in the previous chunk's overlap.
		last := ""
		if len(out) > 0 {
			last = out[len(out)-1].text
		}
		var b strings.Builder
		for _, p := range cur {
			b.WriteString(p.text)
		}
		if !strings.HasSuffix(last, b.String()) {
			out = append(out, piece{text: b.String(), start: cur[0].start})
		}
	}
	return out
}

// lineOffsets returns the byte offset of the start of each line.
func lineOffsets(s string) []int {
	offsets := []int{0}
	for i, r := range s {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineForOffset returns the 1-based line number containing the byte offset.
func lineForOffset(lineStarts []int, offset int) int {
	line := 1
	for i, start := range lineStarts {
		if start > offset {
			break
		}
		line = i + 1
	}
	return line
}

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// headingIndex records markdown headings by line for header attribution.
type headingIndex struct {
	lines  []int
	levels []int
	titles []string
}

// headingsByLine scans markdown for headings outside fenced code blocks.
func headingsByLine(markdown string) *headingIndex {
	idx := &headingIndex{}
	inFence := false
	for i, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		idx.lines = append(idx.lines, i+1)
		idx.levels = append(idx.levels, len(m[1]))
		idx.titles = append(idx.titles, strings.TrimSpace(m[2]))
	}
	return idx
}

// activeAt returns the heading hierarchy in effect at the given line,
// e.g. {"h1": "API", "h2": "Auth"}. Returns nil if no headings precede it.
func (idx *headingIndex) activeAt(line int) map[string]string {
	var active map[string]string
	for i, hl := range idx.lines {
		if hl > line {
			break
		}
		if active == nil {
			active = make(map[string]string)
		}
		level := idx.levels[i]
		active["h"+itoa(level)] = idx.titles[i]
		// A new heading invalidates deeper levels.
		for l := level + 1; l <= 6; l++ {
			delete(active, "h"+itoa(l))
		}
	}
	return active
}

func itoa(n int) string {
	return string(rune('0' + n))
}
