package main

import "github.com/creativeprojects/mailfolder/cmd"

func main() {
	cmd.Execute()
}
