package main

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/Aleph-Alpha/gpucatalog/v1/config"
	"github.com/Aleph-Alpha/gpucatalog/v1/database"
)

const dialTimeout = 2 * time.Second

type target struct {
	name string
	addr string
}

// targets lists the relational server and every MongoDB seed host.
func targets(cfg config.Config) ([]target, error) {
	var out []target

	switch strings.ToLower(cfg.Relational.Type) {
	case database.TypePostgres:
		c := cfg.Relational.Postgres.Connection
		out = append(out, target{"postgres", net.JoinHostPort(c.Host, c.Port)})
	default:
		c := cfg.Relational.MariaDB.Connection
		out = append(out, target{"mysql", net.JoinHostPort(c.Host, c.Port)})
	}

	cs, err := connstring.ParseAndValidate(cfg.MongoDB.Connection.ConnectionURI())
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb uri: %w", err)
	}
	for _, host := range cs.Hosts {
		if _, _, err := net.SplitHostPort(host); err != nil {
			host = net.JoinHostPort(host, "27017")
		}
		out = append(out, target{"mongodb", host})
	}
	return out, nil
}

// check reports TCP reachability of each target. It returns 1 when any is
// unreachable.
func check(cfg config.Config, out io.Writer) int {
	list, err := targets(cfg)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return 1
	}

	code := 0
	for _, t := range list {
		conn, err := net.DialTimeout("tcp", t.addr, dialTimeout)
		if err != nil {
			fmt.Fprintf(out, "[X] %s is NOT reachable on %s: %v\n", t.name, t.addr, err)
			code = 1
			continue
		}
		_ = conn.Close()
		fmt.Fprintf(out, "[OK] %s is running on %s\n", t.name, t.addr)
	}
	return code
}
