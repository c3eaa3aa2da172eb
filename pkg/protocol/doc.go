/*
Package protocol implements the line grammar spoken between the game engine and a bot.

The Decoder is a cursor over a ports.LineSource. Each Decode method consumes exactly
the lines of one block, up to and including its sentinel ("ready" or "go"), and
nothing more. The Decoder keeps no game state between calls besides the line counter
used to report errors.

# Grammar

	turn 0            turn N            end
	<key> <int>       w <row> <col>     players <N>
	...               f <row> <col>     score <v0> ... <vN-1>
	ready             h <row> <col> <o> <world records>
	                  a <row> <col> <o> go
	                  d <row> <col> <o>
	                  go

The Encoder writes orders as "o <row> <col> <N|E|S|W>" lines followed by "go".
*/
package protocol
