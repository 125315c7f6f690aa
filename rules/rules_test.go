package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedSet() EssentialitySet {
	return NewEssentialitySet([]string{"Finder", "kernel_task"}, []int32{0, 1})
}

func TestClassifyByName(t *testing.T) {
	c := NewClassifier(fixedSet())

	assert.Equal(t, Essential, c.Classify(1001, "Finder"))
	assert.Equal(t, Essential, c.Classify(1003, "kernel_task"))
	assert.Equal(t, NonEssential, c.Classify(1002, "sample"))
}

func TestClassifyByPid(t *testing.T) {
	c := NewClassifier(fixedSet())

	assert.Equal(t, Essential, c.Classify(0, "whatever"))
	assert.Equal(t, Essential, c.Classify(1, ""))
	assert.Equal(t, NonEssential, c.Classify(2, ""))
}

func TestClassifyCaseSensitive(t *testing.T) {
	c := NewClassifier(fixedSet())

	assert.Equal(t, NonEssential, c.Classify(500, "finder"))
	assert.Equal(t, NonEssential, c.Classify(500, "FINDER"))
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(fixedSet())

	pairs := []struct {
		pid  int32
		name string
	}{
		{1001, "Finder"},
		{1002, "sample"},
		{0, ""},
		{-1, "bogus"},
		{99999, "kernel_task"},
	}

	for _, p := range pairs {
		first := c.Classify(p.pid, p.name)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.Classify(p.pid, p.name),
				"verdict changed between calls for pid=%d name=%q", p.pid, p.name)
		}
	}
}

func TestDefaultSetProtectsKnownDaemons(t *testing.T) {
	c := NewClassifier(DefaultSet())

	assert.Equal(t, Essential, c.Classify(0, "kernel_task"))
	assert.Equal(t, Essential, c.Classify(1, "launchd"))
	assert.Equal(t, Essential, c.Classify(333, "WindowServer"))
	assert.Equal(t, NonEssential, c.Classify(333, "Safari"))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "essential", Essential.String())
	assert.Equal(t, "non-essential", NonEssential.String())
}
