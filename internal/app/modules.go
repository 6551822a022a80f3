package app

import (
	"github.com/leon-computer/alpha.component-async/internal/registry"
	"github.com/leon-computer/alpha.component-async/modules/httpclient"
	"github.com/leon-computer/alpha.component-async/modules/printer"
	"github.com/leon-computer/alpha.component-async/modules/socketio"
	"github.com/leon-computer/alpha.component-async/modules/wsfeed"
)

// coreModules is the definitive list of component types compiled into the
// binary.
var coreModules = []registry.Module{
	&httpclient.Module{},
	&printer.Module{},
	&socketio.Module{},
	&wsfeed.Module{},
}
