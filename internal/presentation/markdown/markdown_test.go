package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/timescript/internal/presentation/markdown"
	"github.com/aretw0/timescript/pkg/compiler"
)

func TestRender(t *testing.T) {
	src := `#[T1-A]-Default<N>~: The Clock Tower
#[ST1-A]-Default<N>~: Midnight
#[Q1-A]-Default<Guard>~: Who goes there?
        -(1)::[D1-A]-Default<Hero>::<L1>~: A friend.
#[(A1)-A]-Default<Guard>~(1):
+#[D1-A]-V1<Guard>~: Then pass.
#<L1> end;
#[D1-A]-Default<N>~: The door creaks.
`
	want := "# The Clock Tower\n" +
		"\n## Midnight\n" +
		"\n**Guard** asks: Who goes there?\n\n1. A friend. → `L1`\n" +
		"\n> _Answer to 1_\n>\n> **Guard** _(V1)_: Then pass.\n" +
		"\n**N**: The door creaks.\n"

	assert.Equal(t, want, markdown.Render(compiler.New().Compile(src).Document))
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, markdown.Render(nil))
}
