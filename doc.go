/*
Package timescript compiles and lints TimeScript, a line-oriented dialogue scripting language.

A script is a sequence of statements: plain dialogue, titles, questions
followed by indented branch options, and answer blocks that hold a
conversation spoken in reply to a question. The compiler turns a script into
an ordered document tree; the validator reports every grammar violation it can
find with a line and column.

# Usage

	eng := timescript.New()

	res, err := eng.Compile(ctx, source)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range res.Warnings {
		log.Println(w)
	}

	diags := eng.Validate(ctx, source)

	data, err := eng.Export(ctx, source, export.FormatEngine)

# Statement Forms

	#[T1-A]-Default<Narrator>~: The Clock Tower
	#[Q1-A]-Default<Guard>~: Who goes there? {mood:stern}
	        -(1)::[D1-A]-Default<Hero>::<L1>~: A friend.
	#[(A1)-A]-Default<Guard>~(1):
	+#[D1-A]-Default<Guard>~: Then pass.
	#<L1> end;

# Architecture

The engine is a thin facade over pkg/compiler and pkg/validator, both driven
by the shared line grammar in pkg/syntax. Compilations can be cached through a
ports.DocumentCache (pkg/adapters/memory, pkg/adapters/redis) and counted with
pkg/observability. The HTTP and MCP transports live in pkg/adapters.
*/
package timescript
