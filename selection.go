package canvasgrab

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// MaxPage is the largest page number a selection expression can produce
// and the largest total-page count accepted from a viewer.
// Larger numbers are dropped and ranges are clipped to it.
const MaxPage = 100000

// ParseSelection parses a page selection expression such as "1,3,5-7" into
// an ascending list of unique page numbers.
//
// Tokens are separated by commas. A token containing "-" is an inclusive
// range whose bounds must both parse with start <= end; any other token is a
// single page. Each number is read like a lenient integer prefix: leading
// whitespace and trailing garbage are ignored ("7a" is 7). Tokens that do not
// parse, inverted ranges and pages below 1 are dropped without error, so an
// empty or fully invalid expression yields an empty, non-nil slice.
func ParseSelection(expr string) []int {
	set := make(map[int]struct{})
	for _, part := range strings.Split(expr, ",") {
		if strings.Contains(part, "-") {
			bounds := strings.Split(part, "-")
			start, ok1 := leadingInt(bounds[0])
			end, ok2 := leadingInt(bounds[1])
			if !ok1 || !ok2 || start > end {
				continue
			}
			for page := max(start, 1); page <= min(end, MaxPage); page++ {
				set[page] = struct{}{}
			}
			continue
		}
		if page, ok := leadingInt(part); ok && page >= 1 && page <= MaxPage {
			set[page] = struct{}{}
		}
	}
	pages := make([]int, 0, len(set))
	for page := range set {
		pages = append(pages, page)
	}
	slices.Sort(pages)
	return pages
}

// leadingInt parses the integer prefix of s after leading whitespace and an
// optional sign. It reports false when s has no digits at that position.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatSelection renders pages as a compact selection expression, the
// inverse of ParseSelection: consecutive pages collapse into ranges.
// FormatSelection([]int{1, 2, 3, 7}) returns "1-3,7".
func FormatSelection(pages []int) string {
	sorted := slices.Clone(pages)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var b strings.Builder
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(sorted[i]))
		if j > i {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(sorted[j]))
		}
		i = j + 1
	}
	return b.String()
}
