// replicheck registers a set of DBI-style replica descriptors, reports
// their connectivity, and can print the pagination SQL a dialect would
// generate for a query.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shrek82/replica/dialect"
	"github.com/shrek82/replica/dsn"
	"github.com/shrek82/replica/pool"
)

var (
	dsnList  = flag.String("dsn", "", "comma-separated replica DSNs (dbi:<driver>:<params>)")
	user     = flag.String("user", "", "database user")
	password = flag.String("password", "", "database password")
	timeout  = flag.Duration("timeout", 5*time.Second, "per-replica connect/probe timeout")

	pageSQL     = flag.String("page-sql", "", "print pagination SQL for this base query instead of probing")
	dialectName = flag.String("dialect", "mssql", "dialect for -page-sql (mssql, mysql, postgres, sqlite3)")
	orderSpec   = flag.String("order", "", "comma-separated order columns for -page-sql, prefix with - for DESC")
	limit       = flag.Int("limit", 10, "rows per page for -page-sql")
	offset      = flag.Int("offset", 0, "rows to skip for -page-sql")
)

func main() {
	flag.Parse()

	if *pageSQL != "" {
		printPageSQL()
		return
	}
	if *dsnList == "" {
		flag.Usage()
		os.Exit(2)
	}
	probeReplicas()
}

func printPageSQL() {
	d, ok := dialect.Get(*dialectName)
	if !ok {
		log.Fatalf("unknown dialect %q", *dialectName)
	}
	sql, err := d.PageSQL(*pageSQL, parseOrder(*orderSpec), *limit, *offset)
	if err != nil {
		log.Fatalf("page sql: %v", err)
	}
	fmt.Println(sql)
}

func parseOrder(spec string) *dialect.OrderBy {
	if spec == "" {
		return nil
	}
	order := &dialect.OrderBy{}
	for _, col := range strings.Split(spec, ",") {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		desc := strings.HasPrefix(col, "-")
		order.Columns = append(order.Columns, dialect.OrderColumn{
			Expr: strings.TrimPrefix(col, "-"),
			Desc: desc,
		})
	}
	return order
}

func probeReplicas() {
	var descs []dsn.Descriptor
	for _, raw := range strings.Split(*dsnList, ",") {
		descs = append(descs, dsn.Descriptor{
			DSN:      strings.TrimSpace(raw),
			User:     *user,
			Password: *password,
		})
	}

	p := pool.New(&pool.Options{ConnectTimeout: *timeout})
	defer p.Close()

	ctx := context.Background()
	created, err := p.Register(ctx, descs)
	if err != nil {
		log.Printf("registration errors:\n%v", err)
	}
	for _, r := range created {
		key, _ := r.Descriptor().Key()
		fmt.Printf("replica %s: connected\n", key)
	}
	fmt.Printf("%d/%d replicas connected\n", p.ConnectedCount(ctx), len(descs))
}
