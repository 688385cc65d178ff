/*
Package dsl provides a fluent Go builder for dialogue trees.

It is an alternative to JSON or YAML tree files, handy for tests, fixtures and
trees generated at runtime.

Example usage:

	b := dsl.New("smith").Flag("shop_open")

	b.Add("start").
		Text("The smith looks up from the anvil.").
		Go("menu")

	b.Add("menu").
		Prompt("What do you need?").
		Choice("buy", "A sword, please.", "buy_sword", dsl.If(dsl.HasFlag("shop_open"))).
		Choice("leave", "Nothing.", "end")

	b.Add("buy_sword").
		Text("Fine steel.").
		Do(dsl.AddItem("sword")).
		Go("end")

	b.Add("end").End("Safe travels.")

	tree, err := b.Build()
*/
package dsl
