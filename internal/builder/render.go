package builder

import "strings"

// render substitutes {name} placeholders from a closed set of resolved
// values in a single left-to-right pass. Substituted text is never rescanned,
// and a placeholder whose name is not in the value set is left verbatim.
func render(template string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			break
		}
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template)
			break
		}
		close += open

		name := template[open+1 : close]
		if v, ok := values[name]; ok {
			b.WriteString(template[:open])
			b.WriteString(v)
		} else {
			b.WriteString(template[:close+1])
		}
		template = template[close+1:]
	}

	return b.String()
}
