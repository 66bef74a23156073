package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_PassesOnPublishedTable(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, "../../internal/domain/testdata/usno_san_francisco_2012.txt")

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Year 2012: 366 days")
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestRun_FailsOnUnparseableTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	assert.NoError(t, os.WriteFile(path, []byte("title\nRise and Set for the Sun for 2005\n"), 0o600))

	var out bytes.Buffer
	code := run(&out, path)

	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(out.String(), "unsupported_year"), out.String())
}
