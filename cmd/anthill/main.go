// Command anthill plays, validates and replays games of the Ants turn protocol.
package main

func main() {
	Execute()
}
