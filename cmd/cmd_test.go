package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaoapp/mongoverify/config"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/share"
)

const dump = `{
  "_id": {"$oid": "507f1f77bcf86cd799439011"},
  "locked": true,
  "deleted": null,
  "tags": ["a", "b"],
  "entityExampleMap": {"A": {"month": "01"}, "B": {"month": "02"}},
  "address": {"city": "Paris", "zip": "75001"}
}`

const rules = `
- type: equals
  field: _id
  value: 507f1f77bcf86cd799439011
- type: not_null
  field: locked
- type: null
  field: deleted
- type: map_size
  field: entityExampleMap
  size: 2
- type: json_by_key
  field: address
  value: '{"city":"Paris",   "zip":"75001"}'
- type: equals
  field: entityExampleMap.B.month
  value: "02"
`

func reset(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		reset(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})

	conf := config.Conf
	t.Cleanup(func() {
		config.Conf = conf
		config.SetLogger(conf)
		serializer.Reset()
	})

	if args == nil {
		args = []string{}
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestCommandVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, share.VERSION+"\n", out)

	out, err = execute(t, "version", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version")
	assert.Contains(t, out, share.VERSION)
	assert.Contains(t, out, "mongo-driver:")
	assert.Contains(t, out, "testify:")
}

func TestReadBuild(t *testing.T) {
	build := readBuild()
	assert.NotEmpty(t, build.commit)
	assert.Len(t, build.deps, len(modules))
	for name := range modules {
		assert.NotEmpty(t, build.deps[name], name)
	}
}

func TestCommandKinds(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "FIND_BY_ID")
	assert.Contains(t, out, "FindByID")
	assert.Contains(t, out, "JSON_BY_KEY")
	assert.Contains(t, out, "COLLECTION_SIZE")
}

func TestCommandValidate(t *testing.T) {
	doc := write(t, "dump.json", dump)
	rulesFile := write(t, "rules.yml", rules)

	out, err := execute(t, "validate", "--document", doc, "--rules", rulesFile)
	require.NoError(t, err, out)
	assert.Equal(t, 6, strings.Count(out, "PASS"))
	assert.NotContains(t, out, "FAIL")
}

func TestCommandValidateFailure(t *testing.T) {
	doc := write(t, "dump.json", dump)
	rulesFile := write(t, "rules.yml", `
- type: not_null
  field: locked
- type: equals
  field: locked
  value: false
- type: not_null
  field: deleted
`)

	out, err := execute(t, "validate", "-d", doc, "-r", rulesFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EQUALS")
	assert.Equal(t, 1, strings.Count(out, "PASS"))
	assert.Equal(t, 1, strings.Count(out, "FAIL"))
	assert.NotContains(t, out, "NOT_NULL(deleted)")
}

func TestCommandValidateErrors(t *testing.T) {
	doc := write(t, "dump.json", dump)
	rulesFile := write(t, "rules.yml", rules)

	_, err := execute(t, "validate", "--document", doc)
	assert.Error(t, err)

	_, err = execute(t, "validate", "--document", filepath.Join(t.TempDir(), "missing.json"), "--rules", rulesFile)
	assert.Error(t, err)

	_, err = execute(t, "validate", "--document", write(t, "bad.json", "not json"), "--rules", rulesFile)
	assert.Error(t, err)

	_, err = execute(t, "validate", "--document", doc, "--rules", write(t, "bad.yml", "- type: equals\n  field: _id\n"))
	assert.Error(t, err)

	_, err = execute(t, "validate", "--document", doc, "--rules", write(t, "broken.yml", "- type: [\n"))
	assert.Error(t, err)
}

func TestCommandInspect(t *testing.T) {
	file := write(t, "mongoverify.yml", "defaultId: code\nserializeNulls: false\n")

	out, err := execute(t, "inspect", "--config", file)
	require.NoError(t, err)
	assert.Contains(t, out, `"keyField": "code"`)
	assert.Contains(t, out, `"serializeNulls": false`)
	assert.Contains(t, out, share.VERSION)
}

func TestCommandInspectEnv(t *testing.T) {
	t.Setenv("MONGOVERIFY_DEFAULT_ID", "_id")
	file := write(t, ".env", "MONGOVERIFY_DEFAULT_ID=uid\n")

	out, err := execute(t, "inspect", "--env", file)
	require.NoError(t, err)
	assert.Contains(t, out, `"keyField": "uid"`)
}

func TestCommandInspectInvalidConfig(t *testing.T) {
	file := write(t, "mongoverify.yml", "logMode: XML\n")
	assert.Panics(t, func() {
		execute(t, "inspect", "--config", file)
	})
}

func TestCommandUnknown(t *testing.T) {
	_, err := execute(t, "unknown")
	assert.Error(t, err)

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "validate")
}

func TestL(t *testing.T) {
	defer func() { lang = "" }()
	assert.Equal(t, "Show version", L("Show version"))

	lang = "zh-CN"
	assert.Equal(t, "显示当前版本号", L("Show version"))
	assert.Equal(t, "untranslated", L("untranslated"))
}
