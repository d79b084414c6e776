package app

// Built-in platform plugins register themselves on import.
import (
	_ "github.com/yogansh2008/AutoAttendDevArc/plugins/generic"
	_ "github.com/yogansh2008/AutoAttendDevArc/plugins/meet"
	_ "github.com/yogansh2008/AutoAttendDevArc/plugins/whatsapp"
)
