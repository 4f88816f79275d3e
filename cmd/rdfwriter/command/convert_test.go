package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testNQuads = `<http://example.com/alice> <http://example.com/likes> "x" .
<http://example.com/bob> <http://example.com/likes> <http://example.com/alice> <http://example.com/g> .
`

func writeInput(t *testing.T) string {
	name := filepath.Join(t.TempDir(), "data.nq")
	require.NoError(t, os.WriteFile(name, []byte(testNQuads), 0644))
	return name
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCmd()
	b := bytes.NewBuffer(nil)
	cmd.SetOut(b)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return b.String(), err
}

func TestConvertNQuads(t *testing.T) {
	in := writeInput(t)
	out, err := run(t, "convert", "-q", "--threads", "1", "--dump_format", "nquads", in)
	require.NoError(t, err)
	require.Equal(t, testNQuads, out)
}

func TestConvertTurtleRejectsDataset(t *testing.T) {
	in := writeInput(t)
	_, err := run(t, "convert", "-q", "--dump_format", "turtle", in)
	require.Error(t, err)
}

func TestConvertToFile(t *testing.T) {
	in := writeInput(t)
	dst := filepath.Join(t.TempDir(), "out.trig")
	_, err := run(t, "convert", "-q",
		"--prefix", "ex=http://example.com/",
		"--high_speed=false",
		"-i", in, "-o", dst,
	)
	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Contains(t, string(data), "@prefix ex: <http://example.com/> .\n")
	require.Contains(t, string(data), `ex:alice ex:likes "x" .`)
	require.Contains(t, string(data), "ex:g {\n")
}

func TestConvertBadInput(t *testing.T) {
	_, err := run(t, "convert", "-q", "--dump_format", "nquads")
	require.Error(t, err)

	in := writeInput(t)
	_, err = run(t, "convert", "-q", "--dump_format", "nope", in)
	require.Error(t, err)

	_, err = run(t, "convert", "-q", "--dump_format", "nquads", "--prefix", "broken", in)
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	out, err := run(t, "formats")
	require.NoError(t, err)
	for _, name := range []string{"csv", "jsonld", "nquads", "ntriples", "rdfxml", "trig", "tsv", "turtle"} {
		require.Contains(t, out, name)
	}
}
