package events

import "github.com/atomicstack/pie-launcher/internal/logging"

type GestureTracer struct{}

type PopoverTracer struct{}

var (
	Gesture = GestureTracer{}
	Popover = PopoverTracer{}
)

func (GestureTracer) Start(session string, x, y float64, layer int) {
	logging.Trace("gesture.start", map[string]interface{}{"session": session, "x": x, "y": y, "layer": layer})
}

func (GestureTracer) Hover(session, itemID string) {
	logging.Trace("gesture.hover", map[string]interface{}{"session": session, "item": itemID})
}

func (GestureTracer) Navigate(session string, from, to int) {
	logging.Trace("gesture.navigate", map[string]interface{}{"session": session, "from": from, "to": to})
}

func (GestureTracer) Timer(session, kind string, token uint64) {
	logging.Trace("gesture.timer", map[string]interface{}{"session": session, "kind": kind, "token": token})
}

func (GestureTracer) End(session, mode string) {
	logging.Trace("gesture.end", map[string]interface{}{"session": session, "mode": mode})
}

func (GestureTracer) Mode(mode string) {
	logging.Trace("gesture.mode", map[string]interface{}{"mode": mode})
}

func (PopoverTracer) Open(session string, rows int) {
	logging.Trace("popover.open", map[string]interface{}{"session": session, "rows": rows})
}

func (PopoverTracer) Select(session, itemID string) {
	logging.Trace("popover.select", map[string]interface{}{"session": session, "item": itemID})
}

func (PopoverTracer) Dismiss(session string) {
	logging.Trace("popover.dismiss", map[string]interface{}{"session": session})
}
