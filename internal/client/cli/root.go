// Package cli implements the shactl command set on top of the API client.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shastore/shastore/internal/client"
)

const usage = `Usage: shactl [-s server] <command> [args]

Commands:
  hash-text <text> [algorithm]         hash a piece of text
  hash-file <path> [algorithm]         upload a file and hash it
  check <path> <known_hash> [algorithm]   verify a file against a known hash
  list                                 show the most recent hash records
  register <username>                  create an account (prompts for password)
  login <username>                     obtain a bearer token (prompts for password)

The default algorithm is sha256.`

type App struct {
	api *client.Client
	out io.Writer
}

func NewApp(api *client.Client, out io.Writer) *App {
	return &App{api: api, out: out}
}

// Run dispatches a single subcommand. args holds the command name followed
// by its positional arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "hash-text":
		return a.hashText(ctx, args)
	case "hash-file":
		return a.hashFile(ctx, args)
	case "check":
		return a.check(ctx, args)
	case "list":
		return a.list(ctx)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q, run 'shactl help'", cmd)
	}
}

func algorithmArg(args []string, pos int) string {
	if len(args) > pos {
		return args[pos]
	}
	return "sha256"
}

func (a *App) hashText(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shactl hash-text <text> [algorithm]")
	}

	res, err := a.api.HashText(ctx, args[0], algorithmArg(args, 1))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s\n", res.Algorithm, res.Hash)
	return nil
}

func (a *App) hashFile(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shactl hash-file <path> [algorithm]")
	}

	res, err := a.api.HashFile(ctx, args[0], algorithmArg(args, 1))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s  %s\n", res.Algorithm, res.Hash, res.Filename)
	return nil
}

func (a *App) check(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shactl check <path> <known_hash> [algorithm]")
	}

	res, err := a.api.CheckFile(ctx, args[0], algorithmArg(args, 2), args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	if !res.Match {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

func (a *App) list(ctx context.Context) error {
	records, err := a.api.ListHashes(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		name := r.OriginalFilename
		if r.InputType == "text" {
			name = r.OriginalInput
		}
		fmt.Fprintf(a.out, "%s  %-4s  %-6s  %s  %s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.InputType, r.Algorithm, r.Hash, name)
	}
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shactl register <username>")
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.api.Register(ctx, args[0], string(pw)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered %s\n", args[0])
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shactl login <username>")
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, args[0], string(pw))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}
