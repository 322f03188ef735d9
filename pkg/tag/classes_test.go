package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClasses(t *testing.T) {
	div := MustNew("div")
	assert.Equal(t, []string{}, div.Classes())

	Must(div.SetAttribute("class", "a  b a"))
	assert.Equal(t, []string{"a", "b", "a"}, div.Classes())
}

func TestSetClasses(t *testing.T) {
	div := MustNew("div").SetClasses([]string{"x", "y"})
	v, _ := div.Attr("class")
	assert.Equal(t, "x y", v)

	div.SetClasses(nil)
	assert.False(t, div.HasAttribute("class"))

	div.SetClasses([]string{"", ""})
	assert.False(t, div.HasAttribute("class"))
}

func TestHasClass(t *testing.T) {
	div := MustNew("div").AddClass("Card active")
	assert.True(t, div.HasClass("Card"))
	assert.True(t, div.HasClass("active"))
	assert.False(t, div.HasClass("card"))
	assert.False(t, div.HasClass("act"))
}

func TestAddClass(t *testing.T) {
	div := MustNew("div")
	Must(div.SetAttribute("class", "b a b"))

	div.AddClass("c a d")
	assert.Equal(t, []string{"b", "a", "c", "d"}, div.Classes())

	once := MustNew("div").AddClass("a").Classes()
	twice := MustNew("div").AddClass("a").AddClass("a").Classes()
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"a"}, twice)
}

func TestRemoveClass(t *testing.T) {
	div := MustNew("div").AddClass("a b c d")

	div.RemoveClass("b d missing")
	assert.Equal(t, []string{"a", "c"}, div.Classes())

	div.RemoveClass("a c")
	assert.False(t, div.HasAttribute("class"))
}
