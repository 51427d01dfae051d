package main

import "github.com/masmgr/commitlog/cmd"

func main() {
	cmd.Run()
}
