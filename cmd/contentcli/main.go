// contentcli is a small command-line front-end over the content API,
// useful for poking a running service without the web client.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/contentforge/contentforge/pkg/client"
)

func main() {
	baseURL := flag.String("url", envOr("CONTENTFORGE_URL", "http://localhost:8080"), "base URL of the content service")
	token := flag.String("token", os.Getenv("CONTENTFORGE_TOKEN"), "bearer token (optional)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	var opts []client.Option
	if *token != "" {
		opts = append(opts, client.WithToken(*token))
	}
	cli := client.New(*baseURL, opts...)
	ctx := context.Background()

	switch args[0] {
	case "list":
		recs, err := cli.List(ctx)
		exitOn(err)
		dump(recs)
	case "list-user":
		requireArgs(args, 2, "list-user <userId>")
		recs, err := cli.ListByUser(ctx, args[1])
		exitOn(err)
		dump(recs)
	case "get":
		requireArgs(args, 2, "get <id>")
		rec, err := cli.Get(ctx, args[1])
		exitOn(err)
		dump(rec)
	case "create":
		requireArgs(args, 4, "create <title> <contentType> <content>")
		resp, err := cli.Create(ctx, client.CreateRequest{Title: args[1], ContentType: args[2], Content: args[3]})
		exitOn(err)
		dump(resp)
	case "generate":
		requireArgs(args, 4, "generate <title> <contentType> <prompt>")
		rec, err := cli.Generate(ctx, client.GenerateRequest{Title: args[1], ContentType: args[2], Prompt: args[3]})
		exitOn(err)
		dump(rec)
	case "delete":
		requireArgs(args, 2, "delete <id>")
		resp, err := cli.Delete(ctx, args[1])
		exitOn(err)
		dump(resp)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: contentcli [-url URL] [-token TOKEN] <list|list-user|get|create|generate|delete> [args]")
	os.Exit(2)
}

func requireArgs(args []string, n int, form string) {
	if len(args) < n {
		fmt.Fprintf(os.Stderr, "usage: contentcli %s\n", form)
		os.Exit(2)
	}
}

func exitOn(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func dump(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	exitOn(err)
	fmt.Println(string(b))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
