package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	obj := map[string]interface{}{
		"id":   "abc",
		"keep": 1,
		"list": []map[string]interface{}{
			{"id": "nested", "value": true},
		},
	}

	out, err := normalize(obj, map[string]bool{"id": true})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"keep":1,"list":[{"value":true}]}`, string(out))
}
