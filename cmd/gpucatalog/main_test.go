package main

import (
	"bytes"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/gpucatalog/v1/config"
	"github.com/Aleph-Alpha/gpucatalog/v1/database"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options
	}{
		{"default command", nil, options{command: "serve"}},
		{"explicit command", []string{"seed"}, options{command: "seed"}},
		{"config flag", []string{"--config", "prod.yaml", "check"}, options{configPath: "prod.yaml", command: "check"}},
		{"flag after command", []string{"seed", "--backend", "mongodb"}, options{backend: "mongodb", command: "seed"}},
		{"short config", []string{"-c", "x.yaml"}, options{configPath: "x.yaml", command: "serve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GPUCATALOG_CONFIG", "")
			got, err := parseArgs(tt.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	_, err := parseArgs([]string{"seed", "extra"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseArgs([]string{"--no-such-flag"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"frobnicate"}, &out, &errOut, nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), `unknown command "frobnicate"`)
}

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 0, run([]string{"--help"}, &out, &errOut, nil))
	assert.Contains(t, errOut.String(), "Usage: gpucatalog")
}

func TestTargets(t *testing.T) {
	cfg := config.Default()

	list, err := targets(cfg)
	require.NoError(t, err)
	assert.Equal(t, []target{
		{"mysql", "localhost:3306"},
		{"mongodb", "localhost:27017"},
	}, list)

	cfg.Relational.Type = database.TypePostgres
	cfg.MongoDB.Connection.URI = "mongodb://a.example,b.example:27018/?replicaSet=rs0"
	list, err = targets(cfg)
	require.NoError(t, err)
	assert.Equal(t, []target{
		{"postgres", "localhost:5432"},
		{"mongodb", "a.example:27017"},
		{"mongodb", "b.example:27018"},
	}, list)
}

func TestCheck(t *testing.T) {
	up, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer up.Close()

	down, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	downAddr := down.Addr().(*net.TCPAddr)
	require.NoError(t, down.Close())

	upAddr := up.Addr().(*net.TCPAddr)

	cfg := config.Default()
	cfg.Relational.MariaDB.Connection.Host = "127.0.0.1"
	cfg.Relational.MariaDB.Connection.Port = strconv.Itoa(upAddr.Port)
	cfg.MongoDB.Connection.Host = "127.0.0.1"
	cfg.MongoDB.Connection.Port = strconv.Itoa(downAddr.Port)

	var out bytes.Buffer
	code := check(cfg, &out)

	assert.Equal(t, 1, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[OK] mysql"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[X] mongodb"), lines[1])
}
