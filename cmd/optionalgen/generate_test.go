package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NickyBoy89/optional/internal/gosrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `package some

//optional:variant
type DataObject struct {
	Value string
}

//optional:variant DataObject
type special struct{}

//optional:variant Stream
type Pipe struct{}

//optional:variant
type Celsius float64

//optional:variant
type Callback func()
`

// collapse joins all whitespace, so expectations do not depend on alignment
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func scan(t *testing.T, src string) *gosrc.File {
	t.Helper()
	file, err := gosrc.Scan(context.Background(), []byte(src))
	require.NoError(t, err)
	return file
}

func TestGenerate(t *testing.T) {
	generated, err := Generate("", scan(t, source))
	require.NoError(t, err)

	out := collapse(string(generated))
	assert.True(t, strings.HasPrefix(string(generated), "// Code generated by optionalgen. DO NOT EDIT."))

	for _, expected := range []string{
		`package some`,
		`import "github.com/NickyBoy89/optional"`,
		`OptionalDataObject = optional.InstanceOf[*DataObject](optional.Object)`,
		`DataObjectOptionals = optional.As[*DataObject](OptionalDataObject)`,
		`optionalSpecial = optional.InstanceOf[*special](OptionalDataObject)`,
		`specialOptionals = optional.As[*special](optionalSpecial)`,
		`OptionalPipe = optional.InstanceOf[*Pipe](optional.Stream)`,
		`OptionalCelsius = optional.InstanceOf[Celsius](optional.Float)`,
		`OptionalCallback = optional.InstanceOf[Callback](optional.Any)`,
		`func init() { if err := optional.Register(OptionalDataObject); err != nil { panic(err) }`,
	} {
		assert.Contains(t, out, expected)
	}

	// Parents are registered before the variants refining them
	assert.Less(t,
		strings.Index(out, "optional.Register(OptionalDataObject)"),
		strings.Index(out, "optional.Register(optionalSpecial)"),
	)
}

func TestGenerateImportsQualifiedTypes(t *testing.T) {
	generated, err := Generate("", scan(t, `package some

import (
	"os"
	clock "time"
	"strings"
)

//optional:variant Stream
type File = *os.File

//optional:variant
type Schedule = map[clock.Weekday][]*os.File

//optional:variant
type Local struct{ b strings.Builder }
`))
	require.NoError(t, err)

	out := collapse(string(generated))
	assert.Contains(t, out, `import ( "github.com/NickyBoy89/optional" "os" clock "time" )`)
	assert.Contains(t, out, `OptionalFile = optional.InstanceOf[*os.File](optional.Stream)`)
	assert.Contains(t, out, `OptionalSchedule = optional.InstanceOf[map[clock.Weekday][]*os.File](optional.Dict)`)
	// Only the types of the variants need their packages
	assert.NotContains(t, out, `"strings"`)
}

func TestGenerateRejectsUnknownPackages(t *testing.T) {
	_, err := Generate("", scan(t, "package some\n\n//optional:variant\ntype File = *os.File\n"))
	assert.ErrorContains(t, err, "package os used by File is not imported")

	_, err = Generate("",
		scan(t, "package some\n\nimport \"os\"\n\n//optional:variant\ntype File = *os.File\n"),
		scan(t, "package some\n\nimport os \"github.com/some/os\"\n\n//optional:variant\ntype Other = os.File\n"),
	)
	assert.ErrorContains(t, err, "package name os refers to both os and github.com/some/os")
}

func TestGeneratePackageOverride(t *testing.T) {
	generated, err := Generate("other", scan(t, source))
	assert.Error(t, err)
	assert.Nil(t, generated)

	generated, err = Generate("some", scan(t, source), scan(t, "package other\n"))
	require.NoError(t, err)
	assert.Contains(t, string(generated), "package some")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
	}{
		{"no declarations", []string{"package some\n\ntype Some struct{}\n"}},
		{"unknown parent", []string{"package some\n\n//optional:variant Missing\ntype Some struct{}\n"}},
		{"parent declared later", []string{"package some\n\n//optional:variant Later\ntype Some struct{}\n\n//optional:variant\ntype Later struct{}\n"}},
		{"declared twice", []string{"package some\n\n//optional:variant\ntype Some struct{}\n", "package some\n\n//optional:variant\ntype Some int\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var files []*gosrc.File
			for _, src := range tt.sources {
				files = append(files, scan(t, src))
			}
			_, err := Generate("", files...)
			assert.Error(t, err)
		})
	}
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "OptionalDataObject", VariantName("DataObject"))
	assert.Equal(t, "optionalDataObject", VariantName("dataObject"))
	assert.Equal(t, "dataObjectOptionals", HandleName("dataObject"))
	assert.Equal(t, "Ünit", ToPublic("ünit"))
	assert.Equal(t, "optionalÜnit", VariantName("ünit"))
	assert.Equal(t, "OptionalÄpfel", VariantName("Äpfel"))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "some.go")
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "some_test.go"), []byte("package some_test\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not go"), 0o644))

	paths := []string{input, filepath.Join(dir, "some_test.go"), filepath.Join(dir, "notes.txt")}

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), &options{}, paths, &stdout))
	assert.Contains(t, stdout.String(), "OptionalDataObject")

	output := filepath.Join(dir, "variants.go")
	stdout.Reset()
	require.NoError(t, run(context.Background(), &options{output: output, dryRun: true}, paths, &stdout))
	assert.NoFileExists(t, output)
	assert.Empty(t, stdout.String())

	require.NoError(t, run(context.Background(), &options{output: output}, paths, &stdout))
	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "func init()")
}

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "some.go")
	require.NoError(t, os.WriteFile(input, []byte(source), 0o644))

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"-p", "some", input})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "package some")

	cmd = newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
