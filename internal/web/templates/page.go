// Package templates renders the operator page as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/teamtab/internal/core"
)

// EmptyCell is shown in place of an empty table cell.
const EmptyCell = "-"

// PageProps is everything the operator page shows.
type PageProps struct {
	Layouts       []core.Layout
	ActiveLayout  string
	Header        []string
	Rows          []core.FlatRow
	TeamCount     int
	Status        string
	Error         string
	Preview       string
	RemoteEnabled bool
	StatusTTL     time.Duration
}

// Page renders the full operator page.
func Page(p PageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>Teams &amp; Roles</title><style>` + pageCSS + `</style></head>`)
		b.WriteString(`<body><main class="app"><div><h1>Teams &amp; Roles</h1>`)
		b.WriteString(`<p class="lead">Load a team export (<code>{"value":[]}</code>) and review teams with their roles as a spreadsheet-ready table.</p></div>`)

		writeLoadCard(&b, p)
		writeTableCard(&b, p)
		writePreviewCard(&b, p)

		fmt.Fprintf(&b, `<script>const statusTTL = %d;`, p.StatusTTL.Milliseconds())
		b.WriteString(copyScript + `</script></main></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeLoadCard(b *strings.Builder, p PageProps) {
	b.WriteString(`<section class="card"><h2>1. Load data</h2>`)
	b.WriteString(`<p class="caption">Each team should carry <code>_businessunitid_value</code>, <code>com_team_category</code> and <code>teamroles_association</code>, or upload roles separately with a <code>parentId</code>.</p>`)

	b.WriteString(`<div class="upload-area">`)
	b.WriteString(`<form method="post" action="/api/load/file" enctype="multipart/form-data" class="file-input">`)
	b.WriteString(`<label><span>Teams JSON</span><input type="file" name="file" accept="application/json"></label>`)
	b.WriteString(`<label><span>Roles JSON (optional)</span><input type="file" name="roles" accept="application/json"></label>`)
	writeLayoutSelect(b, p, "")
	b.WriteString(`<button type="submit" class="outline">Load file</button></form>`)

	b.WriteString(`<div class="upload-actions">`)
	b.WriteString(`<form method="post" action="/api/load/mock">`)
	writeLayoutSelect(b, p, p.ActiveLayout)
	b.WriteString(`<button type="submit" class="primary">Load sample data</button></form>`)

	if p.RemoteEnabled {
		b.WriteString(`<form method="post" action="/api/load/remote"><button type="submit" class="outline">Fetch from endpoint</button></form>`)
	}

	b.WriteString(`<form method="post" action="/api/clear"><button type="submit" class="outline"`)
	if p.TeamCount == 0 {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>Clear</button></form></div></div>`)

	if p.Error != "" {
		fmt.Fprintf(b, `<p class="error">%s</p>`, templ.EscapeString(p.Error))
	}
	if p.Status != "" {
		fmt.Fprintf(b, `<p class="status">%s</p>`, templ.EscapeString(p.Status))
	}
	b.WriteString(`</section>`)
}

// writeLayoutSelect renders the layout picker. An empty selected key adds
// an "auto" option that lets the upload decide.
func writeLayoutSelect(b *strings.Builder, p PageProps, selected string) {
	b.WriteString(`<select name="layout">`)
	if selected == "" {
		b.WriteString(`<option value="" selected>auto</option>`)
	}
	for _, layout := range p.Layouts {
		fmt.Fprintf(b, `<option value="%s"`, templ.EscapeString(layout.Key))
		if layout.Key == selected {
			b.WriteString(` selected`)
		}
		fmt.Fprintf(b, `>%s</option>`, templ.EscapeString(layout.Label))
	}
	b.WriteString(`</select>`)
}

func writeTableCard(b *strings.Builder, p PageProps) {
	b.WriteString(`<section class="card"><div class="table-header"><div><div class="heading-row">`)
	fmt.Fprintf(b, `<h2>2. Result table</h2><span class="badge">Teams: %d</span></div>`, p.TeamCount)
	b.WriteString(`<p class="caption">Copy the team and role combinations as tab-separated text.</p></div><div class="export-actions">`)
	b.WriteString(`<button type="button" id="copy-table" class="outline"`)
	if len(p.Rows) == 0 {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>Copy table</button>`)
	if len(p.Rows) > 0 {
		b.WriteString(`<a class="outline" href="/api/export/tsv?download=1">TSV</a>`)
		b.WriteString(`<a class="outline" href="/api/export/xlsx">XLSX</a>`)
	}
	b.WriteString(`</div></div><p class="copy-message" id="copy-message" hidden></p>`)

	b.WriteString(`<div class="table-scroll"><table class="plain-table"><thead><tr>`)
	for _, label := range p.Header {
		fmt.Fprintf(b, `<th>%s</th>`, templ.EscapeString(label))
	}
	b.WriteString(`</tr></thead><tbody>`)

	if len(p.Rows) == 0 {
		fmt.Fprintf(b, `<tr><td colspan="%d" class="empty-row">No data yet. Upload a JSON file or load the sample data.</td></tr>`, max(1, len(p.Header)))
	}
	for _, row := range p.Rows {
		b.WriteString(`<tr>`)
		for _, cell := range row {
			if cell == "" {
				cell = EmptyCell
			}
			fmt.Fprintf(b, `<td>%s</td>`, templ.EscapeString(cell))
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div></section>`)
}

func writePreviewCard(b *strings.Builder, p PageProps) {
	b.WriteString(`<section class="card"><h2>3. JSON preview</h2>`)
	b.WriteString(`<p class="caption">Teams exactly as loaded, including attributes not shown in the table.</p>`)
	fmt.Fprintf(b, `<pre class="json-preview">%s</pre></section>`, templ.EscapeString(p.Preview))
}

// ErrorPage renders a standalone error message for non-API requests.
func ErrorPage(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error</title>`)
		b.WriteString(`<style>` + pageCSS + `</style></head><body><main class="app"><section class="card">`)
		fmt.Fprintf(&b, `<p class="error">%s (Code: %s)</p>`, templ.EscapeString(message), templ.EscapeString(code))
		if action != "" {
			fmt.Fprintf(&b, `<p class="caption">%s</p>`, templ.EscapeString(action))
		}
		b.WriteString(`<p><a href="/">Back</a></p></section></main></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

const copyScript = `
(function () {
  const button = document.getElementById("copy-table");
  const message = document.getElementById("copy-message");
  let timer = null;

  function show(text) {
    message.textContent = text;
    message.hidden = false;
    if (timer) {
      clearTimeout(timer);
    }
    timer = setTimeout(function () {
      message.hidden = true;
      message.textContent = "";
    }, statusTTL);
  }

  button.addEventListener("click", async function () {
    try {
      const res = await fetch("/api/export/tsv");
      if (!res.ok) {
        const body = await res.json();
        throw new Error(body.message || res.statusText);
      }
      await navigator.clipboard.writeText(await res.text());
      show("Copied the table as TSV");
    } catch (err) {
      show("Copy failed: " + (err && err.message ? err.message : "select the table manually"));
    }
  });
})();
`

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f6f8; color: #1f2328; }
.app { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; display: grid; gap: 1.5rem; }
.card { background: #fff; border-radius: 8px; padding: 1.25rem; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.lead, .caption { color: #57606a; }
.upload-area, .upload-actions, .export-actions, .file-input { display: flex; flex-wrap: wrap; gap: .75rem; align-items: center; }
.file-input label { display: grid; gap: .25rem; }
button, a.outline { padding: .45rem .9rem; border-radius: 6px; border: 1px solid #0969da; cursor: pointer; text-decoration: none; font-size: .9rem; }
button.primary { background: #0969da; color: #fff; }
button.outline, a.outline { background: #fff; color: #0969da; }
button:disabled { opacity: .5; cursor: not-allowed; }
.error { color: #cf222e; }
.status, .copy-message { color: #1a7f37; }
.table-header, .heading-row { display: flex; justify-content: space-between; align-items: center; gap: 1rem; }
.badge { background: #ddf4ff; color: #0969da; border-radius: 999px; padding: .1rem .6rem; font-size: .8rem; }
.table-scroll { overflow-x: auto; }
.plain-table { border-collapse: collapse; width: 100%; font-size: .9rem; }
.plain-table th, .plain-table td { border: 1px solid #d0d7de; padding: .35rem .5rem; text-align: left; white-space: nowrap; }
.empty-row { text-align: center; color: #57606a; }
.json-preview { background: #0d1117; color: #e6edf3; padding: 1rem; border-radius: 6px; max-height: 420px; overflow: auto; }
`
