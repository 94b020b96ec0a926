package events

import "github.com/atomicstack/pie-launcher/internal/logging"

type ConfigTracer struct{}

type BackendTracer struct{}

var (
	Config  = ConfigTracer{}
	Backend = BackendTracer{}
)

func (ConfigTracer) Load(key string, defaults bool) {
	logging.Trace("config.load", map[string]interface{}{"key": key, "defaults": defaults})
}

func (ConfigTracer) Save(key string) {
	logging.Trace("config.save", map[string]interface{}{"key": key})
}

func (ConfigTracer) Reject(key string, err error) {
	logging.Trace("config.reject", map[string]interface{}{"key": key, "error": err.Error()})
}

func (ConfigTracer) Import(key, path string, count int) {
	logging.Trace("config.import", map[string]interface{}{"key": key, "path": path, "count": count})
}

// Skip records an import file older than the stored value it would replace.
func (ConfigTracer) Skip(key, path string) {
	logging.Trace("config.import.skip", map[string]interface{}{"key": key, "path": path})
}

func (BackendTracer) Poll(apps int, browser string) {
	logging.Trace("backend.poll", map[string]interface{}{"apps": apps, "browser": browser})
}

func (BackendTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("backend.error", map[string]interface{}{"error": err.Error()})
}

func (BackendTracer) Shortcuts(pkg string, count int) {
	logging.Trace("backend.shortcuts", map[string]interface{}{"package": pkg, "count": count})
}
