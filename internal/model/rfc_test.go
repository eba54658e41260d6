package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRFC_ShortStatus(t *testing.T) {
	cases := map[string]string{
		"INTERNET STANDARD":     "IS",
		"PROPOSED STANDARD":     "PS",
		"DRAFT STANDARD":        "DS",
		"BEST CURRENT PRACTICE": "BCP",
		"INFORMATIONAL":         "I",
		"EXPERIMENTAL":          "E",
		"HISTORIC":              "H",
		"UNKNOWN":               "U",
		// Anything unrecognized falls back to initials.
		"SOME NEW STATUS": "SNS",
	}
	for status, want := range cases {
		rfc := RFC{CurrentStatus: status}
		assert.Equal(t, want, rfc.ShortStatus(), "status %q", status)
	}
}
