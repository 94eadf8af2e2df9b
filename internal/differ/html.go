// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML special characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders one side of a rendering as a diff list.
func HTML(spans []Span) string {
	var b strings.Builder
	b.WriteString(`<div class="diff"><ul>`)
	for _, s := range spans {
		line := EscapeHTML(strings.TrimSuffix(s.Text, "\n"))
		switch s.Op {
		case Deleted:
			b.WriteString(`<li class="del"><del>` + line + `</del></li>`)
		case Inserted:
			b.WriteString(`<li class="ins"><ins>` + line + `</ins></li>`)
		case Equal:
			b.WriteString(`<li><span>` + line + `</span></li>`)
		}
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}
