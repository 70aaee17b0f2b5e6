package bootstrap

import (
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// SetupLogging sends JSON lines to w in production and colored text otherwise.
// An unknown level keeps info.
func SetupLogging(w io.Writer, production bool, level string) {
	if production {
		log.SetHandler(json.New(w))
	} else {
		log.SetHandler(text.New(w))
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
