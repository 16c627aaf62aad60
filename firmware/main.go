//go:build tinygo && avr

//go:generate tinygo flash -target=arduino

package main

import (
	"context"

	"github.com/itohio/dvm/pkg/sample"
	"github.com/itohio/dvm/pkg/voltmeter"
)

func main() {
	vm, err := voltmeter.New(board{}, calibration, sample.DefaultWindow)
	if err != nil {
		println("calibration:", err.Error())
		return
	}
	if err := vm.Start(context.Background()); err != nil {
		println(err.Error())
		return
	}

	// Everything else happens in the interrupt handlers.
	for {
	}
}
