package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help", "compile"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "compile FLAGS")
}

func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	defer func() { os.Stdout, os.Stderr = oldOut, oldErr }()

	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW

	doneOut := make(chan struct{})
	var bufOut bytes.Buffer
	go func() { io.Copy(&bufOut, outR); close(doneOut) }()

	doneErr := make(chan struct{})
	var bufErr bytes.Buffer
	go func() { io.Copy(&bufErr, errR); close(doneErr) }()

	err = fn()
	outW.Close()
	errW.Close()
	<-doneOut
	<-doneErr
	stdout, stderr = bufOut.String(), bufErr.String()
	return
}

func TestCompileCommandPrintsPlan(t *testing.T) {
	dir := t.TempDir()
	schemaFile := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(schemaFile, []byte("type Query { hello: String }"), 0644))
	queryFile := filepath.Join(dir, "query.graphql")
	require.NoError(t, os.WriteFile(queryFile, []byte("{ hello }"), 0644))

	out, _, err := captureOutput(t, func() error {
		return run([]string{"compile", "-schema", schemaFile, "-query", queryFile})
	})
	require.NoError(t, err)
	require.Equal(t, "hello", strings.TrimSpace(out))
}

func TestCompileCommandReportsProblems(t *testing.T) {
	dir := t.TempDir()
	schemaFile := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(schemaFile, []byte("type Query { hello: String }"), 0644))
	queryFile := filepath.Join(dir, "query.graphql")
	require.NoError(t, os.WriteFile(queryFile, []byte("{ missing }"), 0644))

	out, _, err := captureOutput(t, func() error {
		return run([]string{"compile", "-schema", schemaFile, "-query", queryFile})
	})
	require.Error(t, err)
	require.Contains(t, out, "UnknownField")
}

func TestCompileRequiresSchemaFlag(t *testing.T) {
	err := run([]string{"compile", "-query", "/dev/null"})
	require.Error(t, err)
}

func TestSchemaCommandPrintsIntrospectionExtendedSDL(t *testing.T) {
	dir := t.TempDir()
	schemaFile := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(schemaFile, []byte("type Query { hello: String }"), 0644))

	out, _, err := captureOutput(t, func() error {
		return run([]string{"schema", "-schema", schemaFile})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query {")
	require.Contains(t, out, "__schema: __Schema!")
	require.Contains(t, out, "type __Schema {")
}

func TestSchemaRequiresSchemaFlag(t *testing.T) {
	err := run([]string{"schema"})
	require.Error(t, err)
}
