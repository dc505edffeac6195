package main

// textRun is a span of printable Latin-1 bytes.
type textRun struct {
	offset int
	data   []byte
}

func printable(b byte) bool {
	return (b >= 0x20 && b < 0x7F) || b >= 0xA0
}

// textRuns returns the printable spans of at least minLen bytes.
func textRuns(data []byte, minLen int) []textRun {
	var runs []textRun
	start := -1
	for i := 0; i <= len(data); i++ {
		if i < len(data) && printable(data[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= minLen {
			runs = append(runs, textRun{offset: start, data: data[start:i]})
		}
		start = -1
	}
	return runs
}
