package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tcases := []struct {
		in  string
		exp string
	}{
		{"", "0.0.0"},
		{"(devel)", "0.0.0"},
		{"v1.2.3", "1.2.3"},
		{"1.2", "1.2.0"},
		{"v0.16.88-3-gabc", "0.16.88-3-gabc"},
	}
	for _, tc := range tcases {
		v := Parse(tc.in)
		assert.Equal(t, tc.exp, v.String(), tc.in)
		assert.Equal(t, tc.in, v.Build)
	}
}

func TestCurrent(t *testing.T) {
	Build = "v1.0.1"
	defer func() { Build = "" }()
	assert.Equal(t, "1.0.1", Current().String())
}
