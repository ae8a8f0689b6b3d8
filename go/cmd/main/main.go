package main

import (
	"github.com/lunixbochs/bgo/go/cmd"

	_ "github.com/lunixbochs/bgo/go/cmd/create"
	_ "github.com/lunixbochs/bgo/go/cmd/repl"
	_ "github.com/lunixbochs/bgo/go/cmd/run"
)

func main() { cmd.Main() }
