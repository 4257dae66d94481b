package gravity

import goLog "log"

// Logger receives coarse operational messages (currently only the
// cache size built by GenerateKeyPair; the CLI does not log). Never
// fed secret material or per-signature detail --
// this scheme is stateless, so there is no signature sequence to log.
type Logger interface {
	Logf(format string, a ...interface{})
}

type dummyLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

type stdlibLogger struct{}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// EnableLogging routes this package's log output to the standard
// "log" package. For more control, use SetLogger.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as the destination for this package's log
// output. Passing nil disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
