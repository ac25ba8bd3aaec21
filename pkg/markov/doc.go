/*
Package markov provides a small, dependency-light toolkit for building
character-level Markov chain models from example words and using them to
synthesize new words that look like the training data.

A Builder consumes training words and produces an immutable Model. A Model
can be shared by any number of Generators and goroutines; it is never
modified after Build returns. Generators perform a random walk over the
model until the end marker is chosen, using an injectable random Source so
that output can be reproduced in tests.

	b, _ := markov.NewBuilder(markov.WithOrder(2))
	b.AddWords("hello", "help", "helmet")
	gen := markov.NewGenerator(b.Build(), nil)
	word, err := gen.Generate(ctx)
*/
package markov
