package config

import "math/rand"

// conches is the pool of default banner quotes. One is picked at random
// when a configuration does not set its own banner text.
var conches = []string{
	`"Hold the shell to your ear and it tells you what to type."`,
	`"The shell knows all!"`,
	`"Whoever holds the conch gets to speak."`,
	`"Ask the magic shell. It has never been wrong before."`,
	`"A good shell is quiet until spoken to."`,
	`"Every session starts with a single prompt."`,
	`"Somewhere between read and print, anything can happen."`,
	`"The tide brought you this shell. Use it wisely."`,
	`"Speak, and the shell shall evaluate."`,
	`"No two shells sound quite the same."`,
}

// Speak returns a random quote. It is exposed to configuration scripts as
// gonch.Speak and makes a handy first context variable to try in a session.
func Speak() string {
	return conches[rand.Intn(len(conches))]
}
