package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	callCount   = make(map[string]int)
	callCountMu sync.Mutex
)

// Option changes how a snapshot is taken
type Option func(o *options)

type options struct {
	ignoreKeys map[string]bool
}

// IgnoreKeys removes object keys with the given names, at any depth, before comparing
// Use it for ids and timestamps that change on every run
func IgnoreKeys(keys ...string) Option {
	return func(o *options) {
		for _, key := range keys {
			o.ignoreKeys[key] = true
		}
	}
}

// Validate compares obj against testdata/<test name>-<n>.json
// The file is written when it does not exist yet
func Validate(t *testing.T, obj interface{}, opts ...Option) {
	t.Helper()

	o := &options{ignoreKeys: make(map[string]bool)}
	for _, opt := range opts {
		opt(o)
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	callCountMu.Lock()
	call := callCount[name]
	callCount[name] = call + 1
	callCountMu.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))

	objJSON, err := normalize(obj, o.ignoreKeys)
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			create(t, filename, objJSON)
			return
		}

		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n")) {
		t.Logf("snapshot %s", filename)
	}
}

// normalize encodes obj as indented JSON without the ignored keys
func normalize(obj interface{}, ignoreKeys map[string]bool) ([]byte, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	return json.MarshalIndent(strip(generic, ignoreKeys), "", "  ")
}

func strip(v interface{}, ignoreKeys map[string]bool) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		for key, val := range v {
			if ignoreKeys[key] {
				delete(v, key)
				continue
			}

			v[key] = strip(val, ignoreKeys)
		}
	case []interface{}:
		for i, val := range v {
			v[i] = strip(val, ignoreKeys)
		}
	}

	return v
}

func create(t *testing.T, filename string, data []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil { // nolint:gosec
		t.Fatalf("could not write snapshot: %v", err)
	}
}
