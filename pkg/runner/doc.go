/*
Package runner drives a dialogue engine against a player.

The Runner owns the loop: show a result, read a line, select a choice or
continue. How results are shown and lines are read is delegated to an
IOHandler, so the same loop serves a terminal (TextHandler) and a program
speaking JSON Lines (JSONHandler).

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx, engine, ""); err != nil {
		log.Fatal(err)
	}

Typing "exit" or "quit" ends the loop; so does the end of input. A cancelled
context ends it with the context's error.
*/
package runner
