package main

import "github.com/ThatOtherAndrew/acsim/cmd"

func main() {
	cmd.Execute()
}
