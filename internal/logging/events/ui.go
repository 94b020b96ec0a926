package events

import "github.com/atomicstack/pie-launcher/internal/logging"

type FilterTracer struct{}

type EditorTracer struct{}

var (
	Filter = FilterTracer{}
	Editor = EditorTracer{}
)

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Highlight(pkg string, index int) {
	logging.Trace("filter.highlight", map[string]interface{}{"package": pkg, "index": index})
}

func (EditorTracer) Open(layers int) {
	logging.Trace("editor.open", map[string]interface{}{"layers": layers})
}

func (EditorTracer) Save(layers int) {
	logging.Trace("editor.save", map[string]interface{}{"layers": layers})
}

func (EditorTracer) Cancel() {
	logging.Trace("editor.cancel", nil)
}
