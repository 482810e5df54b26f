package optional

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// A Noticer receives non-fatal diagnostics, such as a value read without
// checking its presence first. Notices never abort an operation.
type Noticer interface {
	Notice(message string)
}

// NoticerFunc adapts a function to the Noticer interface
type NoticerFunc func(message string)

func (f NoticerFunc) Notice(message string) {
	f(message)
}

// LogNoticer writes notices as warnings to a logrus entry
type LogNoticer struct {
	Entry *log.Entry
}

func (n LogNoticer) Notice(message string) {
	n.Entry.Warn(message)
}

type noticerBox struct {
	noticer Noticer
}

var noticer atomic.Pointer[noticerBox]

func init() {
	SetNoticer(nil)
}

// SetNoticer replaces the sink for notices. A nil noticer restores the default,
// which logs through the standard logrus logger.
func SetNoticer(n Noticer) {
	if n == nil {
		n = LogNoticer{Entry: log.WithField("package", "optional")}
	}
	noticer.Store(&noticerBox{noticer: n})
}

func notice(message string) {
	noticer.Load().noticer.Notice(message)
}
