// Command reportsqlc compiles a report request against a catalog and
// prints the generated SQL — a one-shot CLI in the same vein as
// cmd/mysqldef, down to flag parsing with jessevdk/go-flags and a
// stdin-or-file input convention guarded by golang.org/x/term.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/sqldef/reportsql/catalog"
	"github.com/sqldef/reportsql/internal/logging"
	"github.com/sqldef/reportsql/planner"
	"github.com/sqldef/reportsql/report"
	"github.com/sqldef/reportsql/sqlgen"
)

type options struct {
	Catalog string `short:"c" long:"catalog" description:"Path to the catalog YAML file" required:"true"`
	Request string `short:"r" long:"request" description:"Path to the report request JSON file; '-' or omitted reads stdin" default:"-"`
	Debug   bool   `long:"debug" description:"Pretty-print the planned SqlTree before generating"`
	Version bool   `long:"version" description:"Show this version"`
}

var version = "dev"

func main() {
	logging.Init()

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options]"
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println(version)
		return
	}

	cat, err := catalog.LoadFile(opts.Catalog)
	if err != nil {
		log.Fatal(err)
	}

	requestJSON, err := readRequest(opts.Request)
	if err != nil {
		log.Fatal(err)
	}

	req, err := report.ParseJSON(requestJSON)
	if err != nil {
		log.Fatal(err)
	}

	tree, err := planner.New(cat).Plan(req)
	if err != nil {
		log.Fatal(err)
	}

	if opts.Debug {
		pp.Println(tree)
	}

	fmt.Println(strings.TrimSpace(sqlgen.Generate(tree)))
}

// readRequest reads the request JSON from a file, or from stdin when path
// is "-" — refusing an un-piped terminal the same way sqldef.go's readFile
// does.
func readRequest(path string) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(path)
	}

	if term.IsTerminal(int(syscall.Stdin)) {
		return nil, fmt.Errorf("stdin is not piped; pass --request or pipe a JSON document in")
	}

	var buf bytes.Buffer
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
