package logger

import "sync"

// components holds loggers registered per component name. bootstrap fills it
// from the application logger; a package used without bootstrap falls back to
// the global logger.
var components sync.Map

// Register binds l to component. A nil l removes the binding.
func Register(component string, l *Logger) {
	if l == nil {
		components.Delete(component)
		return
	}
	components.Store(component, l)
}

// Get returns the logger registered for component, or the global logger
// tagged with it.
func Get(component string) *Logger {
	if v, ok := components.Load(component); ok {
		return v.(*Logger)
	}
	return GetGlobalLogger().WithComponent(component)
}
